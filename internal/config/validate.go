package config

import (
	"fmt"
	"strings"
)

// Validate performs syntactic validation on raw config
func Validate(raw *RawConfig) error {
	return validateRawSyntax(raw)
}

// validateRawSyntax performs basic syntactic validation on raw config
func validateRawSyntax(raw *RawConfig) error {
	// Validate static tags
	for i, tag := range raw.Monitor.Tags {
		if strings.TrimSpace(tag.Key) == "" {
			return fmt.Errorf("monitor tag at index %d: key cannot be empty", i)
		}
		if strings.TrimSpace(tag.Value) == "" {
			return fmt.Errorf("monitor tag %q: value cannot be empty", tag.Key)
		}
	}

	// Validate OTEL headers
	if raw.Export.OTEL != nil {
		for name := range raw.Export.OTEL.Headers {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("otel header name cannot be empty")
			}
		}
	}

	return nil
}
