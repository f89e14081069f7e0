package api

import (
	"strings"
	"testing"
)

const minimalClusterYaml = `
clusterName: orders-db
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds:
- subnet-11111111
- subnet-22222222
masterUsername: admin
masterPassword: opensesame1
finalSnapshotIdentifier: orders-db-final
`

func TestClusterFromBytesDefaults(t *testing.T) {
	c, err := ClusterFromBytes([]byte(minimalClusterYaml))
	if err != nil {
		t.Fatalf("failed to load minimal cluster: %v", err)
	}

	if c.Engine != EngineAuroraPostgreSQL {
		t.Errorf("unexpected default engine: %s", c.Engine)
	}
	if c.Port != 5432 {
		t.Errorf("expected default port 5432 for %s but got %d", c.Engine, c.Port)
	}
	if c.InstanceCount != 2 {
		t.Errorf("expected default instanceCount 2 but got %d", c.InstanceCount)
	}
	if c.Instance.InstanceClass != defaultInstanceClass {
		t.Errorf("unexpected default instance class: %s", c.Instance.InstanceClass)
	}
	if c.BackupRetentionPeriod != 7 {
		t.Errorf("expected default backupRetentionPeriod 7 but got %d", c.BackupRetentionPeriod)
	}
	if !c.StorageEncrypted {
		t.Errorf("expected storageEncrypted to default to true")
	}
	if c.NotificationsEnabled() {
		t.Errorf("notifications must be disabled when notificationEmail is unset")
	}
}

func TestClusterEnginePortDerivation(t *testing.T) {
	yaml := minimalClusterYaml + `
engine: aurora-mysql
`
	c, err := ClusterFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	if c.Port != 3306 {
		t.Errorf("expected port 3306 for aurora-mysql but got %d", c.Port)
	}

	yaml = minimalClusterYaml + `
engine: aurora-mysql
port: 13306
`
	c, err = ClusterFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	if c.Port != 13306 {
		t.Errorf("explicit port must win over the engine default but got %d", c.Port)
	}
}

func TestClusterNotificationEmailTrimming(t *testing.T) {
	yaml := minimalClusterYaml + `
notificationEmail: "  dba@example.com  "
`
	c, err := ClusterFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	if c.NotificationEmail != "dba@example.com" {
		t.Errorf("notificationEmail was not trimmed: %q", c.NotificationEmail)
	}
	if !c.NotificationsEnabled() {
		t.Errorf("notifications must be enabled when notificationEmail is set")
	}

	yaml = minimalClusterYaml + `
notificationEmail: "   "
`
	c, err = ClusterFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	if c.NotificationsEnabled() {
		t.Errorf("whitespace-only notificationEmail must not enable notifications")
	}
}

func TestClusterValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected string
	}{
		{
			name: "MissingClusterName",
			yaml: `
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds: [subnet-11111111, subnet-22222222]
masterUsername: admin
masterPassword: opensesame1
finalSnapshotIdentifier: final
`,
			expected: "clusterName must be set",
		},
		{
			name: "BadVPCID",
			yaml: strings.Replace(minimalClusterYaml, "vpc-0a1b2c3d", "0a1b2c3d", 1),
			expected: `vpcId must start with "vpc-"`,
		},
		{
			name: "SingleSubnet",
			yaml: `
clusterName: orders-db
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds: [subnet-11111111]
masterUsername: admin
masterPassword: opensesame1
finalSnapshotIdentifier: final
`,
			expected: "at least 2 subnetIds are required",
		},
		{
			name: "DuplicateSubnets",
			yaml: `
clusterName: orders-db
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds: [subnet-11111111, subnet-11111111]
masterUsername: admin
masterPassword: opensesame1
finalSnapshotIdentifier: final
`,
			expected: "duplicate subnet id",
		},
		{
			name:     "UnknownEngine",
			yaml:     minimalClusterYaml + "engine: mariadb\n",
			expected: "engine must be one of",
		},
		{
			name:     "BadPostgresVersion",
			yaml:     minimalClusterYaml + "engineVersion: banana\n",
			expected: "invalid engineVersion",
		},
		{
			name:     "PostgresVersionForMySQLEngine",
			yaml:     minimalClusterYaml + "engine: aurora-mysql\nengineVersion: \"15.4\"\n",
			expected: "invalid engineVersion",
		},
		{
			name:     "ShortPassword",
			yaml:     strings.Replace(minimalClusterYaml, "opensesame1", "short", 1),
			expected: "masterPassword must be at least 8 characters",
		},
		{
			name:     "PasswordWithForbiddenChars",
			yaml:     strings.Replace(minimalClusterYaml, "opensesame1", "open@sesame", 1),
			expected: "masterPassword must not contain",
		},
		{
			name:     "ZeroInstances",
			yaml:     minimalClusterYaml + "instanceCount: 0\n",
			expected: "instanceCount must be between 1 and 16",
		},
		{
			name:     "TooManyInstances",
			yaml:     minimalClusterYaml + "instanceCount: 17\n",
			expected: "instanceCount must be between 1 and 16",
		},
		{
			name: "MoreOverridesThanInstances",
			yaml: minimalClusterYaml + `
instanceCount: 1
instances:
- instanceClass: db.r6g.xlarge
- instanceClass: db.r6g.2xlarge
`,
			expected: "instance overrides were given for only",
		},
		{
			name:     "RetentionOutOfRange",
			yaml:     minimalClusterYaml + "backupRetentionPeriod: 36\n",
			expected: "backupRetentionPeriod must be between 1 and 35",
		},
		{
			name:     "MalformedBackupWindow",
			yaml:     minimalClusterYaml + "preferredBackupWindow: 25:00-26:00\n",
			expected: "invalid preferredBackupWindow",
		},
		{
			name: "OverlappingWindows",
			yaml: minimalClusterYaml + `
preferredBackupWindow: "03:00-04:00"
preferredMaintenanceWindow: sun:03:30-sun:04:30
`,
			expected: "overlaps",
		},
		{
			name: "KMSKeyWithoutEncryption",
			yaml: minimalClusterYaml + `
storageEncrypted: false
kmsKeyArn: arn:aws:kms:us-west-2:123456789012:key/abc
`,
			expected: "kmsKeyArn must not be set when storageEncrypted is false",
		},
		{
			name: "MissingFinalSnapshotIdentifier",
			yaml: `
clusterName: orders-db
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds: [subnet-11111111, subnet-22222222]
masterUsername: admin
masterPassword: opensesame1
`,
			expected: "finalSnapshotIdentifier must be set when skipFinalSnapshot is false",
		},
		{
			name: "BlankFinalSnapshotIdentifier",
			yaml: strings.Replace(minimalClusterYaml, "finalSnapshotIdentifier: orders-db-final", "finalSnapshotIdentifier: \"   \"", 1),
			expected: "finalSnapshotIdentifier must be set when skipFinalSnapshot is false",
		},
		{
			name:     "BadNotificationEmail",
			yaml:     minimalClusterYaml + "notificationEmail: not-an-email\n",
			expected: "does not look like an email address",
		},
		{
			name: "MonitoringIntervalWithoutRole",
			yaml: minimalClusterYaml + `
instance:
  instanceClass: db.r6g.large
  monitoringInterval: 60
`,
			expected: "monitoringRoleArn must be set",
		},
		{
			name: "InvalidMonitoringInterval",
			yaml: minimalClusterYaml + `
instance:
  instanceClass: db.r6g.large
  monitoringInterval: 7
`,
			expected: "monitoringInterval must be one of",
		},
		{
			name: "InvalidPerformanceInsightsRetention",
			yaml: minimalClusterYaml + `
instance:
  instanceClass: db.r6g.large
  performanceInsights:
    enabled: true
    retentionPeriod: 30
`,
			expected: "retentionPeriod must be 7 or 731",
		},
		{
			name:     "EnableHTTPEndpointOnMySQL",
			yaml:     minimalClusterYaml + "engine: aurora-mysql\nenableHttpEndpoint: true\n",
			expected: "enableHttpEndpoint is only supported for aurora-postgresql",
		},
		{
			name:     "UnknownKey",
			yaml:     minimalClusterYaml + "instnceCount: 3\n",
			expected: "unknown keys found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ClusterFromBytes([]byte(test.yaml))
			if err == nil {
				t.Fatalf("expected an error containing %q but the config was accepted", test.expected)
			}
			if !strings.Contains(err.Error(), test.expected) {
				t.Errorf("expected error containing %q but got: %v", test.expected, err)
			}
		})
	}
}

func TestClusterSkipFinalSnapshotWithoutIdentifier(t *testing.T) {
	yaml := `
clusterName: orders-db
region: us-west-2
vpcId: vpc-0a1b2c3d
subnetIds: [subnet-11111111, subnet-22222222]
masterUsername: admin
masterPassword: opensesame1
skipFinalSnapshot: true
`
	if _, err := ClusterFromBytes([]byte(yaml)); err != nil {
		t.Errorf("skipFinalSnapshot: true must not require finalSnapshotIdentifier: %v", err)
	}
}

func TestClusterValidMySQLVersion(t *testing.T) {
	yaml := minimalClusterYaml + `
engine: aurora-mysql
engineVersion: 8.0.mysql_aurora.3.04.0
`
	if _, err := ClusterFromBytes([]byte(yaml)); err != nil {
		t.Errorf("valid aurora-mysql engineVersion was rejected: %v", err)
	}
}
