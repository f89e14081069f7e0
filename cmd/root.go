package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

const stackTemplatePath = "stack-templates/cluster.json.tmpl"

var (
	RootCmd = &cobra.Command{
		Use:   "aurora-aws",
		Short: "Manage Aurora database clusters on AWS",
		Long:  ``,
	}

	configPath = "cluster.yaml"
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "cluster.yaml", "Location of the cluster config file")
	RootCmd.PersistentFlags().BoolVar(&logger.Silent, "silent", false, "Do not output any log")
	RootCmd.PersistentFlags().BoolVar(&logger.Verbose, "verbose", false, "Output debug log")
	RootCmd.PersistentFlags().BoolVar(&logger.Color, "color", false, "Use color for log")
}

// stackTemplateOptions prefers a template customized via `render
// stack` over the built-in one.
func stackTemplateOptions(s3URI string, prettyPrint bool, skipWait bool) api.StackTemplateOptions {
	opts := api.StackTemplateOptions{
		S3URI:       s3URI,
		PrettyPrint: prettyPrint,
		SkipWait:    skipWait,
	}
	if _, err := os.Stat(stackTemplatePath); err == nil {
		opts.StackTemplateTmplFile = stackTemplatePath
	}
	return opts
}
