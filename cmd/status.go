package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/hammerspace-solutions/aurora-aws/pkg/cluster"
	"github.com/hammerspace-solutions/aurora-aws/pkg/model"
)

var (
	cmdStatus = &cobra.Command{
		Use:          "status",
		Short:        "Describe an existing Aurora cluster",
		Long:         ``,
		RunE:         runCmdStatus,
		SilenceUsage: true,
	}

	statusOpts = struct {
		awsDebug      bool
		output        string
		showSensitive bool
	}{}
)

func init() {
	RootCmd.AddCommand(cmdStatus)
	cmdStatus.Flags().BoolVar(&statusOpts.awsDebug, "aws-debug", false, "Log debug information from aws-sdk-go library")
	cmdStatus.Flags().StringVarP(&statusOpts.output, "output", "o", "text", "Output format: text or yaml")
	cmdStatus.Flags().BoolVar(&statusOpts.showSensitive, "show-sensitive", false, "Show values that reveal account details, like the cluster ARN")
}

func runCmdStatus(cmd *cobra.Command, args []string) error {
	conf, err := model.ClusterFromFile(configPath)
	if err != nil {
		return fmt.Errorf("Failed to read cluster config: %v", err)
	}

	ref, err := cluster.NewClusterRef(conf, statusOpts.awsDebug)
	if err != nil {
		return fmt.Errorf("Failed to initialize cluster driver: %v", err)
	}

	info, err := ref.Describe(statusOpts.showSensitive)
	if err != nil {
		return fmt.Errorf("Failed fetching cluster info: %v", err)
	}

	switch statusOpts.output {
	case "text":
		fmt.Print(info.String())
	case "yaml":
		out, err := yaml.Marshal(info.MaskedCopy())
		if err != nil {
			return fmt.Errorf("Failed to marshal cluster info: %v", err)
		}
		fmt.Print(string(out))
	default:
		return fmt.Errorf("Unsupported output format: %s", statusOpts.output)
	}

	return nil
}
