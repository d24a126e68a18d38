package config

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v4"
)

// RawSettingsConfig holds general application settings
type RawSettingsConfig struct {
	Verbosity string `yaml:"verbosity"`
}

// RawMonitorConfig defines the process sampler
type RawMonitorConfig struct {
	Interval time.Duration `yaml:"interval"`
	PerCPU   bool          `yaml:"per_cpu"`
	Tags     RawTags       `yaml:"tags,omitempty"`
}

// RawTag is one static tag as written in YAML
type RawTag struct {
	Key   string
	Value string
}

// RawTags keeps static tags in document order
type RawTags []RawTag

// UnmarshalYAML reads a mapping while preserving key order.
func (t *RawTags) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: tags must be a mapping", value.Line)
	}

	out := make(RawTags, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: tag %q must have a scalar value", v.Line, k.Value)
		}
		out = append(out, RawTag{Key: k.Value, Value: v.Value})
	}

	*t = out
	return nil
}
