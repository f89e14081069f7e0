package cluster

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

const maskedValue = "****"

// InstanceInfo is one cluster member as reported by RDS.
type InstanceInfo struct {
	Identifier string `yaml:"identifier"`
	Role       string `yaml:"role"`
	Status     string `yaml:"status"`
	Class      string `yaml:"class"`
	AZ         string `yaml:"az"`
}

// Info is the operator-facing summary of a provisioned cluster. The
// yaml tags serve `status --output yaml`.
type Info struct {
	Name              string `yaml:"name"`
	StackStatus       string `yaml:"stackStatus"`
	ClusterStatus     string `yaml:"clusterStatus,omitempty"`
	ClusterArn        string `yaml:"clusterArn,omitempty"`
	WriterEndpoint    string `yaml:"writerEndpoint,omitempty"`
	ReaderEndpoint    string `yaml:"readerEndpoint,omitempty"`
	Port              int64  `yaml:"port,omitempty"`
	SecurityGroupID   string `yaml:"securityGroupId,omitempty"`
	SubnetGroupName   string `yaml:"subnetGroupName,omitempty"`
	NotificationTopic string `yaml:"notificationTopicArn,omitempty"`

	Instances []InstanceInfo `yaml:"instances,omitempty"`

	// ShowSensitive controls whether account-revealing values appear
	// unmasked in the rendered output.
	ShowSensitive bool `yaml:"-"`
}

func (i *Info) masked(v string) string {
	if i.ShowSensitive || v == "" {
		return v
	}
	return maskedValue
}

func (i *Info) String() string {
	buf := new(bytes.Buffer)
	w := new(tabwriter.Writer)
	w.Init(buf, 0, 8, 0, '\t', 0)

	fmt.Fprintf(w, "Cluster Name:\t%s\n", i.Name)
	fmt.Fprintf(w, "Stack Status:\t%s\n", i.StackStatus)
	if i.ClusterStatus != "" {
		fmt.Fprintf(w, "Cluster Status:\t%s\n", i.ClusterStatus)
	}
	if i.ClusterArn != "" {
		fmt.Fprintf(w, "Cluster ARN:\t%s\n", i.masked(i.ClusterArn))
	}
	if i.WriterEndpoint != "" {
		fmt.Fprintf(w, "Writer Endpoint:\t%s\n", i.WriterEndpoint)
	}
	if i.ReaderEndpoint != "" {
		fmt.Fprintf(w, "Reader Endpoint:\t%s\n", i.ReaderEndpoint)
	}
	if i.Port != 0 {
		fmt.Fprintf(w, "Port:\t%d\n", i.Port)
	}
	if i.SecurityGroupID != "" {
		fmt.Fprintf(w, "Security Group:\t%s\n", i.SecurityGroupID)
	}
	if i.SubnetGroupName != "" {
		fmt.Fprintf(w, "Subnet Group:\t%s\n", i.masked(i.SubnetGroupName))
	}
	if i.NotificationTopic != "" {
		fmt.Fprintf(w, "Notification Topic:\t%s\n", i.NotificationTopic)
	}

	for _, instance := range i.Instances {
		fmt.Fprintf(w, "Instance %s:\t%s %s (%s, %s)\n", instance.Identifier, instance.Role, instance.Status, instance.Class, instance.AZ)
	}

	w.Flush()
	return buf.String()
}

// MaskedCopy returns the Info with sensitive fields replaced, for
// output formats that bypass String().
func (i Info) MaskedCopy() Info {
	if !i.ShowSensitive {
		if i.ClusterArn != "" {
			i.ClusterArn = maskedValue
		}
		if i.SubnetGroupName != "" {
			i.SubnetGroupName = maskedValue
		}
	}
	return i
}
