package api

import (
	"testing"

	"github.com/go-yaml/yaml"
)

func TestCIDRRangesExtractFromYAML(t *testing.T) {
	rs := struct {
		CIDRRanges `yaml:"rs"`
	}{}
	if err := yaml.Unmarshal([]byte("rs:\n- \"10.0.0.0/16\"\n- \"192.168.1.0/24\"\n"), &rs); err != nil {
		t.Fatalf("failed to extract CIDR ranges from yaml: %v", err)
	}
	if len(rs.CIDRRanges) != 2 {
		t.Fatalf("expected 2 CIDR ranges but got %d", len(rs.CIDRRanges))
	}
	if actual := rs.CIDRRanges[0].String(); actual != "10.0.0.0/16" {
		t.Errorf("unexpected cidr range extracted. expected = 10.0.0.0/16, actual = %s", actual)
	}
}

func TestCIDRRangeRejectsInvalid(t *testing.T) {
	r := CIDRRange{}
	if err := yaml.Unmarshal([]byte("\"not-a-cidr\""), &r); err == nil {
		t.Errorf("invalid CIDR was accepted")
	}
	if err := yaml.Unmarshal([]byte("\"10.0.0.0\""), &r); err == nil {
		t.Errorf("CIDR without mask was accepted")
	}
}
