package cfnstack

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackCreationErrorMessaging(t *testing.T) {
	events := []*cloudformation.StackEvent{
		{
			// Failure with all fields set
			ResourceStatus:       aws.String("CREATE_FAILED"),
			ResourceType:         aws.String("AWS::RDS::DBInstance"),
			LogicalResourceId:    aws.String("Instance1"),
			ResourceStatusReason: aws.String("Insufficient capacity"),
		},
		{
			// Success, should not show up
			ResourceStatus: aws.String("CREATE_COMPLETE"),
			ResourceType:   aws.String("AWS::RDS::DBInstance"),
		},
		{
			// Failure due to cancellation should not show up
			ResourceStatus:       aws.String("CREATE_FAILED"),
			ResourceType:         aws.String("AWS::RDS::DBInstance"),
			ResourceStatusReason: aws.String("Resource creation cancelled"),
		},
		{
			// Failure with missing fields
			ResourceStatus: aws.String("CREATE_FAILED"),
			ResourceType:   aws.String("AWS::RDS::DBCluster"),
		},
	}

	expectedMsgs := []string{
		"CREATE_FAILED AWS::RDS::DBInstance Instance1 Insufficient capacity",
		"CREATE_FAILED AWS::RDS::DBCluster",
	}

	outputMsgs := StackEventErrMsgs(events)
	if len(expectedMsgs) != len(outputMsgs) {
		t.Errorf("Expected %d stack error messages, got %d\n", len(expectedMsgs), len(outputMsgs))
	}

	for i := range expectedMsgs {
		if expectedMsgs[i] != outputMsgs[i] {
			t.Errorf("Expected `%s`, got `%s`\n", expectedMsgs[i], outputMsgs[i])
		}
	}
}

// DummyCFInterrogator is used to prevent calls to AWS - always returns canned results.
type DummyCFInterrogator struct {
	DescribeStacksResult *cloudformation.DescribeStacksOutput
}

func (cf DummyCFInterrogator) DescribeStacks(input *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error) {
	return cf.DescribeStacksResult, nil
}

func TestStackDoesNotExist(t *testing.T) {
	cf := DummyCFInterrogator{
		DescribeStacksResult: &cloudformation.DescribeStacksOutput{
			Stacks: []*cloudformation.Stack{
				{StackName: aws.String("orders-db")},
			},
		},
	}

	exists, err := StackExists(cf, "payments-db")

	require.NoError(t, err, "Looking up aws stacks should not fail when mocked out")
	assert.False(t, exists, "StackExists thinks that the stack 'payments-db' exists, even though no such stack was returned")
}

func TestStackDoesExist(t *testing.T) {
	cf := DummyCFInterrogator{
		DescribeStacksResult: &cloudformation.DescribeStacksOutput{
			Stacks: []*cloudformation.Stack{
				{StackName: aws.String("orders-db")},
			},
		},
	}

	exists, err := StackExists(cf, "orders-db")
	require.NoError(t, err, "Looking up aws stacks should not fail when mocked out")
	assert.True(t, exists, "The response includes a non deleted stack and so we should get a positive exists")
}

func TestStackExistsIgnoresDeletedStacks(t *testing.T) {
	testtime := time.Now()
	cf := DummyCFInterrogator{
		DescribeStacksResult: &cloudformation.DescribeStacksOutput{
			Stacks: []*cloudformation.Stack{
				{StackName: aws.String("orders-db"), DeletionTime: &testtime},
			},
		},
	}

	exists, err := StackExists(cf, "orders-db")
	require.NoError(t, err, "Looking up aws stacks should not fail when mocked out")
	assert.False(t, exists, "Deleted stacks should not count as existing")
}
