package config

import (
	"fmt"
	"strings"

	"github.com/neox5/metricbox/internal/metric"
)

// SettingsConfig holds general application settings.
type SettingsConfig struct {
	// Verbosity is the process-wide default applied to metrics constructed
	// without an explicit level.
	Verbosity metric.Verbosity
}

// resolveSettings applies defaults and converts raw settings.
func resolveSettings(raw *RawSettingsConfig) (SettingsConfig, error) {
	v, err := resolveVerbosity(raw.Verbosity, DefaultVerbosity)
	if err != nil {
		return SettingsConfig{}, fmt.Errorf("settings: %w", err)
	}
	return SettingsConfig{Verbosity: v}, nil
}

// resolveVerbosity parses a verbosity name, returning fallback when empty.
func resolveVerbosity(s string, fallback metric.Verbosity) (metric.Verbosity, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	v, err := metric.ParseVerbosity(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVerbosity, s)
	}
	return v, nil
}
