package cmd

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

//TODO this is a first step to calculate the stack cost
//this command could scrap aws to print the total cost, rather just showing the link

var (
	cmdCalculator = &cobra.Command{
		Use:          "calculator",
		Short:        "Discover the monthly cost of your cluster",
		Long:         ``,
		RunE:         runCmdCalculator,
		SilenceUsage: true,
	}

	calculatorOpts = struct {
		awsDebug bool
		s3URI    string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdCalculator)
	cmdCalculator.Flags().BoolVar(&calculatorOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdCalculator.Flags().StringVar(&calculatorOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
}

func runCmdCalculator(_ *cobra.Command, _ []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read cluster config: %v", err)
	}

	opts := stackTemplateOptions(calculatorOpts.s3URI, false, false)

	c, err := cluster.NewCluster(conf, opts, calculatorOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize cluster driver: %v", err)
	}

	if _, err := c.ValidateStack(); err != nil {
		return fmt.Errorf("error validating cluster: %v", err)
	}

	cost, err := c.EstimateCost()
	if err != nil {
		return fmt.Errorf("%v", err)
	}

	logger.Heading("To estimate your monthly cost, open the link below")
	logger.Infof("%s", aws.StringValue(cost.Url))
	return nil
}
