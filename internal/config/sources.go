package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sources is the optional YAML overrides file for dataset file matching.
// It lets an operator map renamed export files onto known datasets, or
// disable a dataset entirely, without rebuilding:
//
//	datasets:
//	  retail_orders:
//	    patterns:
//	      - "OrderHistory-2024"
//	  digital_borrows:
//	    disabled: true
type Sources struct {
	Datasets map[string]SourceOverride `yaml:"datasets"`
}

// SourceOverride adjusts how files are matched to a single dataset.
type SourceOverride struct {
	// Patterns are extra file-name prefixes matched in addition to the
	// dataset's built-in ones.
	Patterns []string `yaml:"patterns"`

	// Disabled excludes the dataset from directory scans.
	Disabled bool `yaml:"disabled"`
}

// LoadSources parses the overrides file at path. An empty path or a
// missing file yields an empty Sources, not an error.
func LoadSources(path string) (*Sources, error) {
	if path == "" {
		return &Sources{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sources{}, nil
		}
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	return &s, nil
}

// DatasetKeys returns the overridden dataset keys in sorted order.
func (s *Sources) DatasetKeys() []string {
	keys := make([]string, 0, len(s.Datasets))
	for k := range s.Datasets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Override returns the override for a dataset key, if any.
func (s *Sources) Override(key string) (SourceOverride, bool) {
	o, ok := s.Datasets[key]
	return o, ok
}
