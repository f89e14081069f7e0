package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

var (
	cmdDestroy = &cobra.Command{
		Use:          "destroy",
		Short:        "Destroy an existing Aurora cluster",
		Long:         ``,
		RunE:         runCmdDestroy,
		SilenceUsage: true,
	}

	destroyOpts = struct {
		awsDebug bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdDestroy)
	cmdDestroy.Flags().BoolVar(&destroyOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
}

func runCmdDestroy(cmd *cobra.Command, args []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("Error parsing config: %v", err)
	}

	ref, err := cluster.NewClusterRef(conf, destroyOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("Failed to initialize cluster driver: %v", err)
	}

	exists, err := ref.Exists()
	if err != nil {
		return fmt.Errorf("Failed to check stack existence: %v", err)
	}
	if !exists {
		return fmt.Errorf("Stack %s does not exist", conf.ClusterName)
	}

	if err := ref.Destroy(); err != nil {
		return fmt.Errorf("Failed destroying cluster: %v", err)
	}

	if conf.SkipFinalSnapshot {
		logger.Info("CloudFormation stack is being destroyed. No final snapshot will be taken")
	} else {
		logger.Infof("CloudFormation stack is being destroyed. A final snapshot %q will be taken before the cluster is removed", conf.FinalSnapshotIdentifier)
	}
	return nil
}
