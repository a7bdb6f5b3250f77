package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wildmenipedia/internal/fusion"
)

// LoadPolicy returns the default fusion policy overlaid with the YAML file at
// path. Keys missing from the file keep their defaults. An empty path returns
// the defaults.
func LoadPolicy(path string) (fusion.Policy, error) {
	policy := fusion.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("failed to read fusion policy: %w", err)
	}
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse fusion policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("invalid fusion policy %s: %w", path, err)
	}
	return policy, nil
}
