package api

// StackTemplateOptions carries rendering and provisioning knobs that
// come from command-line flags rather than cluster.yaml.
type StackTemplateOptions struct {
	// StackTemplateTmplFile optionally points at a customized template
	// on disk. When empty the built-in template is used.
	StackTemplateTmplFile string
	S3URI                 string
	PrettyPrint           bool
	SkipWait              bool
}
