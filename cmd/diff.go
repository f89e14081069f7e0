package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

var (
	cmdDiff = &cobra.Command{
		Use:          "diff",
		Short:        "Compare the current and the desired states of the cluster",
		Long:         ``,
		RunE:         runCmdDiff,
		SilenceUsage: true,
	}

	diffOpts = struct {
		awsDebug bool
		context  int
		s3URI    string
	}{}
)

type ExitError struct {
	msg  string
	Code int
}

func (e *ExitError) Error() string {
	return e.msg
}

func init() {
	RootCmd.AddCommand(cmdDiff)
	cmdDiff.Flags().BoolVar(&diffOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdDiff.Flags().StringVar(&diffOpts.s3URI, "s3-uri", "", "When your template is bigger than the cloudformation limit of 51200 bytes, upload the template to the specified location in S3. S3 location expressed as s3://<bucket>/path/to/dir")
	cmdDiff.Flags().IntVarP(&diffOpts.context, "context", "C", -1, "output NUM lines of context around changes")
}

func runCmdDiff(c *cobra.Command, _ []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read cluster config: %v", err)
	}

	// both sides are re-indented before diffing so pretty-printing is moot
	opts := stackTemplateOptions(diffOpts.s3URI, false, false)

	cl, err := cluster.NewCluster(conf, opts, diffOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize cluster driver: %v", err)
	}

	diff, err := cl.DiffAgainstCurrentStack(diffOpts.context)
	if err != nil {
		return fmt.Errorf("error comparing cluster states: %v", err)
	}

	if cluster.HasChanges(diff) {
		logger.Infof("Detected changes in: %s\n%s", conf.ClusterName, diff)
		c.SilenceErrors = true
		return &ExitError{fmt.Sprintf("Detected changes in: %s", conf.ClusterName), 2}
	}

	logger.Info("No changes detected")
	return nil
}
