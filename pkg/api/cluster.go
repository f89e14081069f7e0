package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/hammerspace-solutions/aurora-aws/logger"
)

const (
	defaultInstanceCount         = 2
	defaultInstanceClass         = "db.r6g.large"
	defaultBackupRetentionPeriod = 7

	maxInstanceCount = 16

	minMasterPasswordLen = 8
)

var (
	clusterNameRe  = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	databaseNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	// Good enough to catch obvious typos; SNS does the real validation
	// when the confirmation mail goes out.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Cluster is the top-level cluster.yaml document.
type Cluster struct {
	ClusterName string `yaml:"clusterName,omitempty"`
	Region      `yaml:",inline"`

	VPCID        string     `yaml:"vpcId,omitempty"`
	SubnetIDs    []string   `yaml:"subnetIds,omitempty"`
	AllowedCIDRs CIDRRanges `yaml:"allowedCIDRs,omitempty"`
	Port         int        `yaml:"port,omitempty"`

	Engine        Engine `yaml:"engine,omitempty"`
	EngineVersion string `yaml:"engineVersion,omitempty"`
	DatabaseName  string `yaml:"databaseName,omitempty"`

	MasterUsername string `yaml:"masterUsername,omitempty"`
	MasterPassword string `yaml:"masterPassword,omitempty"`

	InstanceCount int                `yaml:"instanceCount,omitempty"`
	Instance      InstanceSettings   `yaml:"instance,omitempty"`
	Instances     []InstanceSettings `yaml:"instances,omitempty"`

	BackupRetentionPeriod      int    `yaml:"backupRetentionPeriod,omitempty"`
	PreferredBackupWindow      string `yaml:"preferredBackupWindow,omitempty"`
	PreferredMaintenanceWindow string `yaml:"preferredMaintenanceWindow,omitempty"`

	StorageEncrypted   bool   `yaml:"storageEncrypted,omitempty"`
	KMSKeyARN          string `yaml:"kmsKeyArn,omitempty"`
	DeletionProtection bool   `yaml:"deletionProtection,omitempty"`

	SkipFinalSnapshot       bool   `yaml:"skipFinalSnapshot,omitempty"`
	FinalSnapshotIdentifier string `yaml:"finalSnapshotIdentifier,omitempty"`

	EnableHTTPEndpoint bool `yaml:"enableHttpEndpoint,omitempty"`

	NotificationEmail string `yaml:"notificationEmail,omitempty"`

	StackTags      map[string]string `yaml:"stackTags,omitempty"`
	CloudFormation CloudFormation    `yaml:"cloudFormation,omitempty"`

	UnknownKeys `yaml:",inline"`
}

// CloudFormation holds provisioning-time knobs that don't change the
// shape of the database itself.
type CloudFormation struct {
	RoleARN string `yaml:"roleArn,omitempty"`
	// ResourceOverrides maps sjson-style paths under the template's
	// Resources key to replacement values, applied after rendering.
	ResourceOverrides map[string]interface{} `yaml:"resourceOverrides,omitempty"`
	UnknownKeys       `yaml:",inline"`
}

// NewDefaultCluster returns a Cluster with every defaultable field
// populated. Unmarshalling cluster.yaml on top of it overrides only
// what the user set.
func NewDefaultCluster() *Cluster {
	return &Cluster{
		Engine:                EngineAuroraPostgreSQL,
		InstanceCount:         defaultInstanceCount,
		Instance:              InstanceSettings{InstanceClass: defaultInstanceClass},
		BackupRetentionPeriod: defaultBackupRetentionPeriod,
		StorageEncrypted:      true,
	}
}

// ClusterFromBytes parses cluster.yaml content over the defaults and
// validates the result.
func ClusterFromBytes(data []byte) (*Cluster, error) {
	c := NewDefaultCluster()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse cluster config: %v", err)
	}
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load fills derived defaults and validates the whole document. It
// must be called once after unmarshalling and before the cluster is
// compiled or provisioned.
func (c *Cluster) Load() error {
	c.NotificationEmail = strings.TrimSpace(c.NotificationEmail)
	c.FinalSnapshotIdentifier = strings.TrimSpace(c.FinalSnapshotIdentifier)

	if c.Port == 0 {
		c.Port = c.Engine.DefaultPort()
	}

	if err := c.valid(); err != nil {
		return errors.Wrap(err, "invalid cluster")
	}

	if len(c.AllowedCIDRs) == 0 {
		logger.Warnf("allowedCIDRs is empty: no inbound database access will be granted until the security group is amended")
	}

	return nil
}

// NotificationsEnabled reports whether the SNS topic, subscription and
// RDS event subscription should exist.
func (c *Cluster) NotificationsEnabled() bool {
	return c.NotificationEmail != ""
}

func (c Cluster) valid() error {
	if c.ClusterName == "" {
		return fmt.Errorf("clusterName must be set")
	}
	if !clusterNameRe.MatchString(c.ClusterName) {
		return fmt.Errorf("clusterName must match %s but was: %s", clusterNameRe.String(), c.ClusterName)
	}
	if len(c.ClusterName) > 50 {
		return fmt.Errorf("clusterName must be 50 characters or less but was %d characters", len(c.ClusterName))
	}

	if c.Region.IsEmpty() {
		return fmt.Errorf("region must be set")
	}

	if err := c.validNetwork(); err != nil {
		return err
	}

	if err := c.Engine.Valid(); err != nil {
		return err
	}
	if err := c.Engine.ValidateVersion(c.EngineVersion); err != nil {
		return err
	}

	if c.DatabaseName != "" && !databaseNameRe.MatchString(c.DatabaseName) {
		return fmt.Errorf("databaseName must match %s but was: %s", databaseNameRe.String(), c.DatabaseName)
	}

	if err := c.validCredentials(); err != nil {
		return err
	}

	if err := c.validInstances(); err != nil {
		return err
	}

	if c.BackupRetentionPeriod < 1 || c.BackupRetentionPeriod > 35 {
		return fmt.Errorf("backupRetentionPeriod must be between 1 and 35 days but was: %d", c.BackupRetentionPeriod)
	}

	if err := ValidateWindows(c.PreferredBackupWindow, c.PreferredMaintenanceWindow); err != nil {
		return err
	}

	if c.KMSKeyARN != "" {
		if !c.StorageEncrypted {
			return fmt.Errorf("kmsKeyArn must not be set when storageEncrypted is false")
		}
		if !looksLikeARN(c.KMSKeyARN) {
			return fmt.Errorf("kmsKeyArn is not a valid ARN: %s", c.KMSKeyARN)
		}
	}

	if !c.SkipFinalSnapshot && c.FinalSnapshotIdentifier == "" {
		return fmt.Errorf("finalSnapshotIdentifier must be set when skipFinalSnapshot is false")
	}

	if c.EnableHTTPEndpoint {
		if c.Engine != EngineAuroraPostgreSQL {
			return fmt.Errorf("enableHttpEndpoint is only supported for %s", EngineAuroraPostgreSQL)
		}
		if !c.Region.SupportsDataAPI() {
			return fmt.Errorf("enableHttpEndpoint is not supported in region %s", c.Region.Name)
		}
	}

	if c.NotificationEmail != "" && !emailRe.MatchString(c.NotificationEmail) {
		return fmt.Errorf("notificationEmail does not look like an email address: %s", c.NotificationEmail)
	}

	if c.CloudFormation.RoleARN != "" && !looksLikeARN(c.CloudFormation.RoleARN) {
		return fmt.Errorf("cloudFormation.roleArn is not a valid ARN: %s", c.CloudFormation.RoleARN)
	}

	if err := c.UnknownKeys.FailWhenUnknownKeysFound(""); err != nil {
		return err
	}
	if err := c.CloudFormation.UnknownKeys.FailWhenUnknownKeysFound("cloudFormation"); err != nil {
		return err
	}

	return nil
}

func (c Cluster) validNetwork() error {
	if c.VPCID == "" {
		return fmt.Errorf("vpcId must be set")
	}
	if !strings.HasPrefix(c.VPCID, "vpc-") {
		return fmt.Errorf("vpcId must start with \"vpc-\" but was: %s", c.VPCID)
	}

	if len(c.SubnetIDs) < 2 {
		return fmt.Errorf("at least 2 subnetIds are required for an Aurora subnet group but %d were given", len(c.SubnetIDs))
	}
	seen := map[string]bool{}
	for _, id := range c.SubnetIDs {
		if !strings.HasPrefix(id, "subnet-") {
			return fmt.Errorf("subnetIds entries must start with \"subnet-\" but found: %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate subnet id: %s", id)
		}
		seen[id] = true
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 but was: %d", c.Port)
	}

	return nil
}

func (c Cluster) validCredentials() error {
	if c.MasterUsername == "" {
		return fmt.Errorf("masterUsername must be set")
	}
	if c.MasterPassword == "" {
		return fmt.Errorf("masterPassword must be set")
	}
	if len(c.MasterPassword) < minMasterPasswordLen {
		return fmt.Errorf("masterPassword must be at least %d characters", minMasterPasswordLen)
	}
	if strings.ContainsAny(c.MasterPassword, `/"@`) {
		return fmt.Errorf(`masterPassword must not contain "/", "\"" or "@"`)
	}
	return nil
}

func (c Cluster) validInstances() error {
	if c.InstanceCount < 1 || c.InstanceCount > maxInstanceCount {
		return fmt.Errorf("instanceCount must be between 1 and %d but was: %d", maxInstanceCount, c.InstanceCount)
	}
	if len(c.Instances) > c.InstanceCount {
		return fmt.Errorf("%d instance overrides were given for only %d instances", len(c.Instances), c.InstanceCount)
	}
	if err := c.Instance.Validate(); err != nil {
		return errors.Wrap(err, "invalid instance defaults")
	}
	for i := range c.Instances {
		if err := c.Instances[i].UnknownKeys.FailWhenUnknownKeysFound(fmt.Sprintf("instances[%d]", i)); err != nil {
			return err
		}
		if pi := c.Instances[i].PerformanceInsights; pi != nil {
			if err := pi.UnknownKeys.FailWhenUnknownKeysFound(fmt.Sprintf("instances[%d].performanceInsights", i)); err != nil {
				return err
			}
		}
	}
	if err := c.Instance.UnknownKeys.FailWhenUnknownKeysFound("instance"); err != nil {
		return err
	}
	if pi := c.Instance.PerformanceInsights; pi != nil {
		if err := pi.UnknownKeys.FailWhenUnknownKeysFound("instance.performanceInsights"); err != nil {
			return err
		}
	}
	return nil
}
