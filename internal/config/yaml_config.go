package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// Catalog seed data is easier to manage in YAML than env vars.
type YAMLConfig struct {
	TrackedCategory TrackedCategoryConfig `yaml:"tracked_category"`
	Categories      []CategoryConfig      `yaml:"categories"`
}

// TrackedCategoryConfig names the category the engine manages. The slug is
// fixed; only the display name is configurable.
type TrackedCategoryConfig struct {
	Name string `yaml:"name"`
}

// CategoryConfig defines a catalog category to ensure at startup.
type CategoryConfig struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
