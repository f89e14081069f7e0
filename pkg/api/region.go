package api

import (
	"fmt"
	"strings"
)

type Region struct {
	Name string `yaml:"region,omitempty"`
}

func RegionForName(name string) Region {
	return Region{
		Name: name,
	}
}

func (r Region) String() string {
	return r.Name
}

func (r Region) S3Endpoint() string {
	if r.IsChina() {
		return fmt.Sprintf("https://s3.%s.amazonaws.com.cn", r.Name)
	}
	if r.IsGovcloud() {
		return fmt.Sprintf("https://s3-%s.amazonaws.com", r.Name)
	}
	return "https://s3.amazonaws.com"
}

func (r Region) Partition() string {
	if r.IsChina() {
		return "aws-cn"
	}
	if r.IsGovcloud() {
		return "aws-us-gov"
	}
	return "aws"
}

func (r Region) IsChina() bool {
	return strings.HasPrefix(r.Name, "cn-")
}

func (r Region) IsGovcloud() bool {
	return strings.HasPrefix(r.Name, "us-gov-")
}

func (r Region) IsEmpty() bool {
	return r.Name == ""
}

// SupportsDataAPI reports whether the RDS Data API endpoint can be enabled in
// this region. The Data API has no China or GovCloud footprint.
func (r Region) SupportsDataAPI() bool {
	return !r.IsChina() && !r.IsGovcloud()
}
