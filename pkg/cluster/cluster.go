package cluster

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"

	"github.com/hammerspace-solutions/aurora-aws/awsconn"
	"github.com/hammerspace-solutions/aurora-aws/cfnstack"
	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"

	"github.com/aws/aws-sdk-go/aws/session"
)

// stackPolicyBody allows all updates. Replacement protection for the
// DB cluster comes from DeletionPolicy and deletionProtection instead.
const stackPolicyBody = `{
  "Statement" : [
    {
       "Effect" : "Allow",
       "Principal" : "*",
       "Action" : "Update:*",
       "Resource" : "*"
     }
  ]
}
`

type ClusterRef struct {
	*model.Config
	session *session.Session
}

type Cluster struct {
	*ClusterRef
	StackConfig *model.StackConfig
}

type ec2Service interface {
	DescribeVpcs(*ec2.DescribeVpcsInput) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(*ec2.DescribeSubnetsInput) (*ec2.DescribeSubnetsOutput, error)
}

func NewClusterRef(cfg *api.Cluster, awsDebug bool) (*ClusterRef, error) {
	config, err := model.Compile(cfg)
	if err != nil {
		return nil, err
	}

	sess, err := awsconn.NewSessionFromRegion(cfg.Region, awsDebug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish aws session")
	}

	return &ClusterRef{
		Config:  config,
		session: sess,
	}, nil
}

func NewCluster(cfg *api.Cluster, opts api.StackTemplateOptions, awsDebug bool) (*Cluster, error) {
	ref, err := NewClusterRef(cfg, awsDebug)
	if err != nil {
		return nil, err
	}

	return &Cluster{
		ClusterRef:  ref,
		StackConfig: model.NewStackConfig(ref.Config, opts),
	}, nil
}

// validateExistingVPCState checks cluster.yaml against what actually
// exists in the account before any stack API call is made.
func (c *ClusterRef) validateExistingVPCState(ec2Svc ec2Service) error {
	describeVpcsInput := ec2.DescribeVpcsInput{
		VpcIds: []*string{aws.String(c.VPCID)},
	}
	vpcOutput, err := ec2Svc.DescribeVpcs(&describeVpcsInput)
	if err != nil {
		return fmt.Errorf("error describing existing vpc: %v", err)
	}
	if len(vpcOutput.Vpcs) == 0 {
		return fmt.Errorf("could not find vpc %s in region %s", c.VPCID, c.Region)
	}

	describeSubnetsInput := ec2.DescribeSubnetsInput{
		SubnetIds: aws.StringSlice(c.SubnetIDs),
	}
	subnetOutput, err := ec2Svc.DescribeSubnets(&describeSubnetsInput)
	if err != nil {
		return fmt.Errorf("error describing subnets: %v", err)
	}

	azs := map[string]bool{}
	for _, subnet := range subnetOutput.Subnets {
		if aws.StringValue(subnet.VpcId) != c.VPCID {
			return fmt.Errorf(
				"subnet %s belongs to vpc %s, not the configured vpc %s",
				aws.StringValue(subnet.SubnetId),
				aws.StringValue(subnet.VpcId),
				c.VPCID,
			)
		}
		azs[aws.StringValue(subnet.AvailabilityZone)] = true
	}
	if len(subnetOutput.Subnets) != len(c.SubnetIDs) {
		return fmt.Errorf("only %d of the %d configured subnets exist", len(subnetOutput.Subnets), len(c.SubnetIDs))
	}
	if len(azs) < 2 {
		return fmt.Errorf("an Aurora subnet group requires subnets in at least 2 availability zones but the configured subnets cover %d", len(azs))
	}

	return nil
}

func (c *Cluster) stackProvisioner() *cfnstack.Provisioner {
	return cfnstack.NewProvisioner(
		c.StackName(),
		c.StackTags,
		c.StackConfig.StackParameters(),
		c.StackConfig.S3URI,
		c.Region,
		stackPolicyBody,
		c.session,
		c.CloudFormation.RoleARN,
	)
}

// Validate checks the live AWS environment and then asks
// CloudFormation to validate the rendered template.
func (c *Cluster) Validate() (string, error) {
	if err := c.validateExistingVPCState(ec2.New(c.session)); err != nil {
		return "", err
	}
	return c.ValidateStack()
}

func (c *Cluster) ValidateStack() (string, error) {
	body, err := c.StackConfig.RenderStackTemplateAsString()
	if err != nil {
		return "", errors.Wrap(err, "failed to render stack template")
	}
	return c.stackProvisioner().Validate(body)
}

func (c *Cluster) Create() error {
	body, err := c.StackConfig.RenderStackTemplateAsString()
	if err != nil {
		return errors.Wrap(err, "failed to render stack template")
	}

	cfSvc := cloudformation.New(c.session)
	s3Svc := s3.New(c.session)

	if c.StackConfig.SkipWait {
		logger.Infof("Not waiting for creation of the CloudFormation stack %s to complete", c.StackName())
		_, err = c.stackProvisioner().CreateStack(cfSvc, s3Svc, body)
		return err
	}

	return c.stackProvisioner().CreateStackAndWait(cfSvc, s3Svc, body)
}

func (c *Cluster) Update() (string, error) {
	body, err := c.StackConfig.RenderStackTemplateAsString()
	if err != nil {
		return "", errors.Wrap(err, "failed to render stack template")
	}

	cfSvc := cloudformation.New(c.session)
	s3Svc := s3.New(c.session)

	if c.StackConfig.SkipWait {
		logger.Infof("Not waiting for the update of the CloudFormation stack %s to complete", c.StackName())
		updateOutput, err := c.stackProvisioner().UpdateStack(cfSvc, s3Svc, body)
		if err != nil {
			return "", err
		}
		return updateOutput.String(), nil
	}

	return c.stackProvisioner().UpdateStackAndWait(cfSvc, s3Svc, body)
}

// CurrentStackTemplate fetches the template body of the running stack
// for diffing against a freshly rendered one.
func (c *Cluster) CurrentStackTemplate() (string, error) {
	return c.stackProvisioner().CurrentStackTemplate(cloudformation.New(c.session))
}

// EstimateCost asks CloudFormation for a cost estimate of the
// rendered template.
func (c *Cluster) EstimateCost() (*cloudformation.EstimateTemplateCostOutput, error) {
	body, err := c.StackConfig.RenderStackTemplateAsString()
	if err != nil {
		return nil, errors.Wrap(err, "failed to render stack template")
	}
	return c.stackProvisioner().EstimateTemplateCost(cloudformation.New(c.session), body, c.StackConfig.StackParameters())
}

// Exists reports whether the cluster's CloudFormation stack is live.
func (c *ClusterRef) Exists() (bool, error) {
	return cfnstack.StackExists(cloudformation.New(c.session), c.StackName())
}

func (c *ClusterRef) Destroy() error {
	return cfnstack.NewDestroyer(c.StackName(), c.session, c.CloudFormation.RoleARN).Destroy()
}

func (c *Cluster) String() string {
	return fmt.Sprintf("{Config:%+v}", *c.StackConfig.Config)
}
