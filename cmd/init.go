package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/builtin"
	"github.com/hammerspace-solutions/aurora-aws/filegen"
	"github.com/hammerspace-solutions/aurora-aws/logger"
)

var (
	cmdInit = &cobra.Command{
		Use:          "init",
		Short:        "Initialize default cluster config",
		Long:         ``,
		RunE:         runCmdInit,
		SilenceUsage: true,
	}

	initOpts = struct {
		ClusterName    string
		Region         string
		VPCID          string
		SubnetIDs      []string
		Engine         string
		MasterUsername string
		MasterPassword string
	}{}
)

func init() {
	RootCmd.AddCommand(cmdInit)
	cmdInit.Flags().StringVar(&initOpts.ClusterName, "cluster-name", "", "The name of this Aurora cluster. This will be the name of the cloudformation stack")
	cmdInit.Flags().StringVar(&initOpts.Region, "region", "", "The AWS region to deploy to")
	cmdInit.Flags().StringVar(&initOpts.VPCID, "vpc-id", "", "The vpc to place the cluster in")
	cmdInit.Flags().StringSliceVar(&initOpts.SubnetIDs, "subnet-ids", []string{}, "Comma separated list of subnets forming the db subnet group")
	cmdInit.Flags().StringVar(&initOpts.Engine, "engine", "aurora-postgresql", "Aurora engine flavor: aurora-postgresql or aurora-mysql")
	cmdInit.Flags().StringVar(&initOpts.MasterUsername, "master-username", "", "Master username of the database")
	cmdInit.Flags().StringVar(&initOpts.MasterPassword, "master-password", "", "Master password of the database")
}

func runCmdInit(cmd *cobra.Command, args []string) error {
	required := []flag{
		{"--cluster-name", initOpts.ClusterName},
		{"--region", initOpts.Region},
		{"--vpc-id", initOpts.VPCID},
		{"--subnet-ids", strings.Join(initOpts.SubnetIDs, ",")},
		{"--master-username", initOpts.MasterUsername},
		{"--master-password", initOpts.MasterPassword},
	}
	if err := validateRequired(required...); err != nil {
		return err
	}

	if err := filegen.CreateFileFromTemplate(configPath, initOpts, builtin.Bytes(builtin.ClusterConfigTmplFile)); err != nil {
		return fmt.Errorf("Error exec-ing default config template: %v", err)
	}

	successMsg :=
		`Success! Created %s

Next steps:
1. (Optional) Edit %s to customize instance classes, backups and notifications.
2. Use the "aurora-aws validate" command to check cluster configuration.
3. Use the "aurora-aws up" command to create the stack.
`

	logger.Infof(successMsg, configPath, configPath)
	return nil
}
