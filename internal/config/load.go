package config

import (
	"fmt"
)

// Load reads and resolves a YAML configuration file
func Load(path string) (*Config, error) {
	raw, err := Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg, err := Resolve(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given: default
// verbosity, default monitor interval and the Prometheus exporter.
func Default() *Config {
	cfg, err := Resolve(&RawConfig{})
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not resolve: %v", err))
	}
	return cfg
}
