package datasync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLSeedSource reads seeds from a YAML list.
type YAMLSeedSource struct {
	path string
}

// NewYAMLSeedSource creates a new YAMLSeedSource.
func NewYAMLSeedSource(path string) *YAMLSeedSource {
	return &YAMLSeedSource{path: path}
}

// ReadAll returns the seeds in file order.
func (s *YAMLSeedSource) ReadAll() ([]Seed, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}

	var seeds []Seed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", s.path, err)
	}
	for i, seed := range seeds {
		if seed.OwnerID == "" {
			return nil, fmt.Errorf("%s: seed %d has no owner_id", s.path, i+1)
		}
	}
	return seeds, nil
}
