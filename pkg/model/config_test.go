package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

func testStackTemplateOptions() api.StackTemplateOptions {
	// empty template path renders the built-in template
	return api.StackTemplateOptions{PrettyPrint: true}
}

func TestCompileExpandsInstances(t *testing.T) {
	c, err := ClusterFromBytes([]byte(testClusterYaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}

	config, err := Compile(c)
	if err != nil {
		t.Fatalf("failed to compile cluster: %v", err)
	}

	if len(config.Instances) != 3 {
		t.Fatalf("expected 3 instances but got %d", len(config.Instances))
	}

	identifiers := []string{}
	for _, instance := range config.Instances {
		identifiers = append(identifiers, instance.Identifier)
	}
	expected := []string{"orders-db-1", "orders-db-2", "orders-db-3"}
	if diff := cmp.Diff(expected, identifiers); diff != "" {
		t.Errorf("unexpected instance identifiers (-want +got):\n%s", diff)
	}

	for i, instance := range config.Instances {
		if instance.PromotionTier != i {
			t.Errorf("unexpected promotion tier for instance %d: %d", i+1, instance.PromotionTier)
		}
		if instance.InstanceClass != "db.r6g.large" {
			t.Errorf("unexpected instance class for instance %d: %s", i+1, instance.InstanceClass)
		}
	}
	if config.WriterIdentifier() != "orders-db-1" {
		t.Errorf("unexpected writer identifier: %s", config.WriterIdentifier())
	}
	if config.StackName() != "orders-db" {
		t.Errorf("unexpected stack name: %s", config.StackName())
	}
}

func TestCompileMergesOverridesOverDefaults(t *testing.T) {
	monitored := testClusterYaml + `
instance:
  instanceClass: db.r6g.large
  monitoringInterval: 60
  monitoringRoleArn: arn:aws:iam::123456789012:role/rds-monitoring
instances:
- instanceClass: db.r6g.4xlarge
`
	c, err := ClusterFromBytes([]byte(monitored))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	config, err := Compile(c)
	if err != nil {
		t.Fatalf("failed to compile cluster: %v", err)
	}

	writer := config.Instances[0]
	if writer.InstanceClass != "db.r6g.4xlarge" {
		t.Errorf("override did not win for the writer: %s", writer.InstanceClass)
	}
	if writer.MonitoringIntervalValue() != 60 {
		t.Errorf("default monitoringInterval was not inherited by the writer: %d", writer.MonitoringIntervalValue())
	}
	if writer.MonitoringRoleARN != "arn:aws:iam::123456789012:role/rds-monitoring" {
		t.Errorf("default monitoringRoleArn was not inherited by the writer: %s", writer.MonitoringRoleARN)
	}

	replica := config.Instances[1]
	if replica.InstanceClass != "db.r6g.large" {
		t.Errorf("defaults were not applied to the replica: %s", replica.InstanceClass)
	}
}

func TestCompileRejectsInvalidMergedInstance(t *testing.T) {
	yaml := testClusterYaml + `
instances:
- monitoringInterval: 60
`
	c, err := ClusterFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	// merged instance has a monitoring interval but no role
	if _, err := Compile(c); err == nil {
		t.Errorf("expected compile to reject an instance with monitoringInterval but no monitoringRoleArn")
	}
}

func TestDeletionPolicy(t *testing.T) {
	c, err := ClusterFromBytes([]byte(testClusterYaml))
	if err != nil {
		t.Fatalf("failed to load cluster: %v", err)
	}
	config, err := Compile(c)
	if err != nil {
		t.Fatalf("failed to compile cluster: %v", err)
	}
	if config.DeletionPolicy() != "Snapshot" {
		t.Errorf("unexpected deletion policy: %s", config.DeletionPolicy())
	}

	config.SkipFinalSnapshot = true
	if config.DeletionPolicy() != "Delete" {
		t.Errorf("unexpected deletion policy with skipFinalSnapshot: %s", config.DeletionPolicy())
	}
}
