package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

var (
	cmdUp = &cobra.Command{
		Use:          "up",
		Short:        "Create a new Aurora cluster",
		Long:         ``,
		RunE:         runCmdUp,
		SilenceUsage: true,
	}

	upOpts = struct {
		awsDebug, export, prettyPrint, skipWait bool
		s3URI                                   string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdUp)
	cmdUp.Flags().BoolVar(&upOpts.export, "export", false, "Don't create the cluster, instead export the cloudformation stack file")
	cmdUp.Flags().BoolVar(&upOpts.prettyPrint, "pretty-print", false, "Pretty print the resulting CloudFormation")
	cmdUp.Flags().BoolVar(&upOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdUp.Flags().StringVar(&upOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
	cmdUp.Flags().BoolVar(&upOpts.skipWait, "skip-wait", false, "Don't wait for the stack creation to complete")
}

func runCmdUp(cmd *cobra.Command, args []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("Failed to read cluster config: %v", err)
	}

	opts := stackTemplateOptions(upOpts.s3URI, upOpts.prettyPrint, upOpts.skipWait)

	c, err := cluster.NewCluster(conf, opts, upOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("Failed to initialize cluster driver: %v", err)
	}

	if upOpts.export {
		stackTemplate, err := c.StackConfig.RenderStackTemplateAsBytes()
		if err != nil {
			return fmt.Errorf("Failed to render stack template: %v", err)
		}
		templatePath := fmt.Sprintf("%s.stack-template.json", conf.ClusterName)
		logger.Infof("Exporting %s", templatePath)
		if err := ioutil.WriteFile(templatePath, stackTemplate, 0600); err != nil {
			return fmt.Errorf("Error writing %s : %v", templatePath, err)
		}
		return nil
	}

	if _, err := c.Validate(); err != nil {
		return fmt.Errorf("Error validating cluster: %v", err)
	}

	logger.Info("Creating AWS resources. Please wait. It may take a few minutes.")
	if err := c.Create(); err != nil {
		return fmt.Errorf("Error creating cluster: %v", err)
	}

	if upOpts.skipWait {
		return nil
	}

	info, err := c.Describe(false)
	if err != nil {
		return fmt.Errorf("Failed fetching cluster info: %v", err)
	}

	successMsg :=
		`Success! Your Aurora cluster is being finalized by RDS.

%s
`
	logger.Infof(successMsg, info)
	return nil
}
