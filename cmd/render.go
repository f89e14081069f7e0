package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/builtin"
	"github.com/hammerspace-solutions/aurora-aws/filegen"
	"github.com/hammerspace-solutions/aurora-aws/logger"
)

var (
	cmdRender = &cobra.Command{
		Use:          "render",
		Short:        "Render deployment artifacts",
		Long:         ``,
		SilenceUsage: true,
	}

	cmdRenderStack = &cobra.Command{
		Use:          "stack",
		Short:        "Export the default CloudFormation stack template for customization",
		Long:         ``,
		RunE:         runCmdRenderStack,
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(cmdRender)
	cmdRender.AddCommand(cmdRenderStack)
}

func runCmdRenderStack(cmd *cobra.Command, args []string) error {
	if err := filegen.WriteFile(stackTemplatePath, builtin.Bytes(builtin.StackTemplateTmplFile)); err != nil {
		return fmt.Errorf("Error writing %s: %v", stackTemplatePath, err)
	}

	successMsg :=
		`Success! Wrote %s

Edit the template to customize the stack. The next "up", "update",
"diff" or "validate" run picks it up automatically.
`
	logger.Infof(successMsg, stackTemplatePath)
	return nil
}
