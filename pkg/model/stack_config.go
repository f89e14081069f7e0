package model

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/tidwall/sjson"

	"github.com/hammerspace-solutions/aurora-aws/builtin"
	"github.com/hammerspace-solutions/aurora-aws/filereader/jsontemplate"
	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

const (
	parameterMasterUsername = "MasterUsername"
	parameterMasterPassword = "MasterPassword"
)

type StackConfig struct {
	*Config
	api.StackTemplateOptions
}

func NewStackConfig(config *Config, opts api.StackTemplateOptions) *StackConfig {
	return &StackConfig{
		Config:               config,
		StackTemplateOptions: opts,
	}
}

// RenderStackTemplateAsBytes renders the CloudFormation template and
// applies any cloudFormation.resourceOverrides from cluster.yaml on
// top of the result.
func (c *StackConfig) RenderStackTemplateAsBytes() ([]byte, error) {
	var rendered []byte
	var err error

	if c.StackTemplateTmplFile != "" {
		rendered, err = jsontemplate.GetBytes(c.StackTemplateTmplFile, *c, c.PrettyPrint)
	} else {
		rendered, err = jsontemplate.GetBytesFromRaw(
			builtin.StackTemplateTmplFile,
			builtin.String(builtin.StackTemplateTmplFile),
			*c,
			c.PrettyPrint,
		)
	}
	if err != nil {
		return nil, err
	}

	return c.applyResourceOverrides(rendered)
}

func (c *StackConfig) RenderStackTemplateAsString() (string, error) {
	bytes, err := c.RenderStackTemplateAsBytes()
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (c *StackConfig) applyResourceOverrides(body []byte) ([]byte, error) {
	patched := string(body)
	var err error
	for path, value := range c.CloudFormation.ResourceOverrides {
		patched, err = sjson.Set(patched, "Resources."+path, value)
		if err != nil {
			return nil, fmt.Errorf("failed to apply resource override %q: %v", path, err)
		}
	}
	return []byte(patched), nil
}

// StackParameters returns the template parameters carrying the master
// credentials. The template declares them NoEcho so they never appear
// in the template body, rendered exports, or console output.
func (c *StackConfig) StackParameters() []*cloudformation.Parameter {
	return []*cloudformation.Parameter{
		{
			ParameterKey:   aws.String(parameterMasterUsername),
			ParameterValue: aws.String(c.MasterUsername),
		},
		{
			ParameterKey:   aws.String(parameterMasterPassword),
			ParameterValue: aws.String(c.MasterPassword),
		},
	}
}
