package model

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/hammerspace-solutions/aurora-aws/logger"
	"github.com/hammerspace-solutions/aurora-aws/naming"
	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

// Compile derives the full per-instance topology from a validated
// cluster config.
func Compile(cfgRef *api.Cluster) (*Config, error) {
	c := &api.Cluster{}
	*c = *cfgRef

	config := &Config{
		Cluster: c,
	}

	instances, err := expandInstances(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive instance configuration")
	}
	config.Instances = instances

	if logger.Verbose {
		logger.Debugf("compiled config: %s", spew.Sdump(config))
	}

	return config, nil
}

// expandInstances produces InstanceCount instances. Instance i takes
// the cluster-wide defaults with the i-th entry of `instances` merged
// on top, if one exists. The first instance is the writer so the
// promotion tier follows the ordinal.
func expandInstances(c *api.Cluster) ([]InstanceConfig, error) {
	instances := make([]InstanceConfig, 0, c.InstanceCount)

	for ordinal := 1; ordinal <= c.InstanceCount; ordinal++ {
		settings := c.Instance
		if ordinal <= len(c.Instances) {
			override := c.Instances[ordinal-1]
			if err := mergo.Merge(&override, settings); err != nil {
				return nil, fmt.Errorf("failed to merge settings for instance %d: %v", ordinal, err)
			}
			settings = override
		}

		if err := settings.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid settings for instance %d", ordinal)
		}

		instances = append(instances, InstanceConfig{
			InstanceSettings: settings,
			Identifier:       fmt.Sprintf("%s-%d", c.ClusterName, ordinal),
			LogicalName:      naming.InstanceLogicalName(ordinal),
			PromotionTier:    ordinal - 1,
		})
	}

	return instances, nil
}
