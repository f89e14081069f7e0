package model

import (
	"fmt"
	"io/ioutil"

	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

func ClusterFromFile(filename string) (*api.Cluster, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	c, err := ClusterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("file %s: %v", filename, err)
	}

	return c, nil
}

// ClusterFromBytes is used directly by unit tests, which keep their
// configs as hardcoded strings.
func ClusterFromBytes(data []byte) (*api.Cluster, error) {
	return api.ClusterFromBytes(data)
}
