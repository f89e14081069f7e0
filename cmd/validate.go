package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

var (
	cmdValidate = &cobra.Command{
		Use:          "validate",
		Short:        "Validate cluster config and the resulting CloudFormation template",
		Long:         ``,
		RunE:         runCmdValidate,
		SilenceUsage: true,
	}

	validateOpts = struct {
		awsDebug    bool
		offline     bool
		prettyPrint bool
		s3URI       string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdValidate)
	cmdValidate.Flags().BoolVar(&validateOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdValidate.Flags().BoolVar(&validateOpts.offline, "offline", false, "Only validate the config and render the template, without calling any AWS API")
	cmdValidate.Flags().BoolVar(&validateOpts.prettyPrint, "pretty-print", false, "Pretty print the resulting CloudFormation")
	cmdValidate.Flags().StringVar(&validateOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
}

func runCmdValidate(cmd *cobra.Command, args []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("Failed to read cluster config: %v", err)
	}
	logger.Info("Successfully validated cluster config")

	opts := stackTemplateOptions(validateOpts.s3URI, validateOpts.prettyPrint, false)

	if validateOpts.offline {
		config, err := model.Compile(conf)
		if err != nil {
			return fmt.Errorf("Failed to compile cluster config: %v", err)
		}
		if _, err := model.NewStackConfig(config, opts).RenderStackTemplateAsString(); err != nil {
			return fmt.Errorf("Failed to render stack template: %v", err)
		}
		logger.Info("Successfully rendered the stack template")
		return nil
	}

	c, err := cluster.NewCluster(conf, opts, validateOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("Failed to initialize cluster driver: %v", err)
	}

	report, err := c.Validate()
	if err != nil {
		return fmt.Errorf("Error validating cluster: %v", err)
	}
	logger.Debugf("Validation report: %s", report)

	logger.Info("Validation OK!")
	return nil
}
