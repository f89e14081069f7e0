package cluster

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/rds"
)

type dummyStackDescriber struct {
	outputs map[string]string
	status  string
}

func (d dummyStackDescriber) DescribeStacks(*cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error) {
	outputs := []*cloudformation.Output{}
	for k, v := range d.outputs {
		outputs = append(outputs, &cloudformation.Output{
			OutputKey:   aws.String(k),
			OutputValue: aws.String(v),
		})
	}
	return &cloudformation.DescribeStacksOutput{
		Stacks: []*cloudformation.Stack{
			{
				StackName:   aws.String("orders-db"),
				StackStatus: aws.String(d.status),
				Outputs:     outputs,
			},
		},
	}, nil
}

type dummyRDSDescriber struct {
	status  string
	members []*rds.DBClusterMember
}

func (d dummyRDSDescriber) DescribeDBClusters(*rds.DescribeDBClustersInput) (*rds.DescribeDBClustersOutput, error) {
	return &rds.DescribeDBClustersOutput{
		DBClusters: []*rds.DBCluster{
			{
				Status:           aws.String(d.status),
				Port:             aws.Int64(5432),
				DBClusterMembers: d.members,
			},
		},
	}, nil
}

func (d dummyRDSDescriber) DescribeDBInstances(input *rds.DescribeDBInstancesInput) (*rds.DescribeDBInstancesOutput, error) {
	return &rds.DescribeDBInstancesOutput{
		DBInstances: []*rds.DBInstance{
			{
				DBInstanceIdentifier: input.DBInstanceIdentifier,
				DBInstanceStatus:     aws.String("available"),
				DBInstanceClass:      aws.String("db.r6g.large"),
				AvailabilityZone:     aws.String("us-west-2a"),
			},
		},
	}, nil
}

func testDescriberFixtures() (dummyStackDescriber, dummyRDSDescriber) {
	cfSvc := dummyStackDescriber{
		status: "CREATE_COMPLETE",
		outputs: map[string]string{
			"ClusterIdentifier": "orders-db",
			"ClusterArn":        "arn:aws:rds:us-west-2:123456789012:cluster:orders-db",
			"WriterEndpoint":    "orders-db.cluster-abc.us-west-2.rds.amazonaws.com",
			"ReaderEndpoint":    "orders-db.cluster-ro-abc.us-west-2.rds.amazonaws.com",
			"SecurityGroupId":   "sg-12345678",
			"SubnetGroupName":   "orders-db-subnetgroup",
		},
	}
	rdsSvc := dummyRDSDescriber{
		status: "available",
		members: []*rds.DBClusterMember{
			{DBInstanceIdentifier: aws.String("orders-db-1"), IsClusterWriter: aws.Bool(true)},
			{DBInstanceIdentifier: aws.String("orders-db-2"), IsClusterWriter: aws.Bool(false)},
		},
	}
	return cfSvc, rdsSvc
}

func TestDescribeCluster(t *testing.T) {
	cfSvc, rdsSvc := testDescriberFixtures()

	info, err := describeCluster("orders-db", cfSvc, rdsSvc, false)
	if err != nil {
		t.Fatalf("failed to describe cluster: %v", err)
	}

	if info.StackStatus != "CREATE_COMPLETE" {
		t.Errorf("unexpected stack status: %s", info.StackStatus)
	}
	if info.ClusterStatus != "available" {
		t.Errorf("unexpected cluster status: %s", info.ClusterStatus)
	}
	if info.Port != 5432 {
		t.Errorf("unexpected port: %d", info.Port)
	}
	if len(info.Instances) != 2 {
		t.Fatalf("expected 2 instances but got %d", len(info.Instances))
	}
	if info.Instances[0].Role != "writer" {
		t.Errorf("expected the first member to be the writer but was: %s", info.Instances[0].Role)
	}
	if info.Instances[1].Role != "reader" {
		t.Errorf("expected the second member to be a reader but was: %s", info.Instances[1].Role)
	}
	if info.Instances[0].Class != "db.r6g.large" {
		t.Errorf("unexpected instance class: %s", info.Instances[0].Class)
	}
}

func TestInfoMasksSensitiveValues(t *testing.T) {
	cfSvc, rdsSvc := testDescriberFixtures()

	info, err := describeCluster("orders-db", cfSvc, rdsSvc, false)
	if err != nil {
		t.Fatalf("failed to describe cluster: %v", err)
	}

	rendered := info.String()
	if strings.Contains(rendered, "123456789012") {
		t.Errorf("cluster ARN leaked into masked output:\n%s", rendered)
	}
	if strings.Contains(rendered, "orders-db-subnetgroup") {
		t.Errorf("subnet group name leaked into masked output:\n%s", rendered)
	}
	if !strings.Contains(rendered, "orders-db.cluster-abc.us-west-2.rds.amazonaws.com") {
		t.Errorf("writer endpoint must not be masked:\n%s", rendered)
	}

	masked := info.MaskedCopy()
	if masked.ClusterArn != maskedValue {
		t.Errorf("MaskedCopy must mask the cluster ARN: %s", masked.ClusterArn)
	}
	if masked.SubnetGroupName != maskedValue {
		t.Errorf("MaskedCopy must mask the subnet group name: %s", masked.SubnetGroupName)
	}

	info.ShowSensitive = true
	rendered = info.String()
	if !strings.Contains(rendered, "123456789012") {
		t.Errorf("cluster ARN must be visible with ShowSensitive:\n%s", rendered)
	}
}
