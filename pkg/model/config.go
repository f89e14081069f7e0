package model

import (
	"fmt"

	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

// VERSION set by build script
var VERSION = "UNKNOWN"

const (
	securityGroupLogicalName     = "SecurityGroup"
	subnetGroupLogicalName       = "SubnetGroup"
	dbClusterLogicalName         = "Cluster"
	notificationTopicLogicalName = "NotificationTopic"
)

// Config is the compiled form of a cluster.yaml document: the user's
// settings plus everything derived from them, ready for templating.
type Config struct {
	*api.Cluster

	// Instances is the fully expanded per-instance configuration with
	// overrides already merged over the cluster-wide defaults.
	Instances []InstanceConfig
}

// InstanceConfig is one DB instance as it appears in the stack
// template.
type InstanceConfig struct {
	api.InstanceSettings

	Identifier    string
	LogicalName   string
	PromotionTier int
}

// The template needs concrete values for fields that are pointers in
// the yaml surface.

func (i InstanceConfig) MonitoringIntervalValue() int {
	if i.MonitoringInterval == nil {
		return 0
	}
	return *i.MonitoringInterval
}

func (i InstanceConfig) AutoMinorVersionUpgradeValue() bool {
	if i.AutoMinorVersionUpgrade == nil {
		return true
	}
	return *i.AutoMinorVersionUpgrade
}

func (i InstanceConfig) PubliclyAccessibleValue() bool {
	if i.PubliclyAccessible == nil {
		return false
	}
	return *i.PubliclyAccessible
}

func (i InstanceConfig) PerformanceInsightsEnabled() bool {
	return i.PerformanceInsights != nil && i.PerformanceInsights.Enabled
}

func (i InstanceConfig) PerformanceInsightsRetention() int {
	if !i.PerformanceInsightsEnabled() || i.PerformanceInsights.RetentionPeriod == 0 {
		return 7
	}
	return i.PerformanceInsights.RetentionPeriod
}

func (i InstanceConfig) PerformanceInsightsKMSKeyARN() string {
	if i.PerformanceInsights == nil {
		return ""
	}
	return i.PerformanceInsights.KMSKeyARN
}

func (c *Config) StackName() string {
	return c.ClusterName
}

func (c *Config) ClusterLogicalName() string {
	return dbClusterLogicalName
}

func (c *Config) SecurityGroupLogicalName() string {
	return securityGroupLogicalName
}

func (c *Config) SubnetGroupLogicalName() string {
	return subnetGroupLogicalName
}

func (c *Config) NotificationTopicLogicalName() string {
	return notificationTopicLogicalName
}

// DeletionPolicy maps the snapshot settings onto the CloudFormation
// DeletionPolicy of the DB cluster.
func (c *Config) DeletionPolicy() string {
	if c.SkipFinalSnapshot {
		return "Delete"
	}
	return "Snapshot"
}

func (c *Config) WriterIdentifier() string {
	if len(c.Instances) == 0 {
		return ""
	}
	return c.Instances[0].Identifier
}

func (c *Config) String() string {
	return fmt.Sprintf("{ClusterName:%s Region:%s Engine:%s Instances:%d}", c.ClusterName, c.Region.Name, c.Engine, len(c.Instances))
}
