package cluster

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/rds"
)

type stackDescriber interface {
	DescribeStacks(*cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
}

type rdsDescriber interface {
	DescribeDBClusters(*rds.DescribeDBClustersInput) (*rds.DescribeDBClustersOutput, error)
	DescribeDBInstances(*rds.DescribeDBInstancesInput) (*rds.DescribeDBInstancesOutput, error)
}

// Describe assembles the Info for a provisioned cluster from the
// CloudFormation stack outputs and the live RDS state.
func (c *ClusterRef) Describe(showSensitive bool) (*Info, error) {
	cfSvc := cloudformation.New(c.session)
	rdsSvc := rds.New(c.session)
	return describeCluster(c.StackName(), cfSvc, rdsSvc, showSensitive)
}

func describeCluster(stackName string, cfSvc stackDescriber, rdsSvc rdsDescriber, showSensitive bool) (*Info, error) {
	resp, err := cfSvc.DescribeStacks(&cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %s: %v", stackName, err)
	}
	if len(resp.Stacks) == 0 {
		return nil, fmt.Errorf("stack %s not found", stackName)
	}
	stack := resp.Stacks[0]

	info := &Info{
		Name:          stackName,
		StackStatus:   aws.StringValue(stack.StackStatus),
		ShowSensitive: showSensitive,
	}

	var clusterIdentifier string
	for _, output := range stack.Outputs {
		value := aws.StringValue(output.OutputValue)
		switch aws.StringValue(output.OutputKey) {
		case "ClusterIdentifier":
			clusterIdentifier = value
		case "ClusterArn":
			info.ClusterArn = value
		case "WriterEndpoint":
			info.WriterEndpoint = value
		case "ReaderEndpoint":
			info.ReaderEndpoint = value
		case "SecurityGroupId":
			info.SecurityGroupID = value
		case "SubnetGroupName":
			info.SubnetGroupName = value
		case "NotificationTopicArn":
			info.NotificationTopic = value
		}
	}

	if clusterIdentifier == "" {
		return info, nil
	}

	dbResp, err := rdsSvc.DescribeDBClusters(&rds.DescribeDBClustersInput{
		DBClusterIdentifier: aws.String(clusterIdentifier),
	})
	if err != nil {
		// The stack can exist while the cluster is still being created
		// or is already gone.
		if awsErr, ok := err.(awserr.Error); ok && awsErr.Code() == rds.ErrCodeDBClusterNotFoundFault {
			return info, nil
		}
		return nil, fmt.Errorf("failed to describe db cluster %s: %v", clusterIdentifier, err)
	}
	if len(dbResp.DBClusters) == 0 {
		return info, nil
	}
	dbCluster := dbResp.DBClusters[0]

	info.ClusterStatus = aws.StringValue(dbCluster.Status)
	info.Port = aws.Int64Value(dbCluster.Port)

	for _, member := range dbCluster.DBClusterMembers {
		role := "reader"
		if aws.BoolValue(member.IsClusterWriter) {
			role = "writer"
		}
		instance := InstanceInfo{
			Identifier: aws.StringValue(member.DBInstanceIdentifier),
			Role:       role,
		}

		instResp, err := rdsSvc.DescribeDBInstances(&rds.DescribeDBInstancesInput{
			DBInstanceIdentifier: member.DBInstanceIdentifier,
		})
		if err == nil && len(instResp.DBInstances) > 0 {
			dbInstance := instResp.DBInstances[0]
			instance.Status = aws.StringValue(dbInstance.DBInstanceStatus)
			instance.Class = aws.StringValue(dbInstance.DBInstanceClass)
			instance.AZ = aws.StringValue(dbInstance.AvailabilityZone)
		}

		info.Instances = append(info.Instances, instance)
	}

	return info, nil
}
