package config

import "time"

// RawExportConfig defines how metrics are exposed
type RawExportConfig struct {
	QueueSize  int                        `yaml:"queue_size"`
	Stdout     *RawStdoutExportConfig     `yaml:"stdout,omitempty"`
	Prometheus *RawPrometheusExportConfig `yaml:"prometheus,omitempty"`
	OTEL       *RawOTELExportConfig       `yaml:"otel,omitempty"`
}

// RawStdoutExportConfig defines the line protocol writer
type RawStdoutExportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Verbosity string `yaml:"verbosity"`
}

// RawPrometheusExportConfig defines Prometheus pull endpoint settings
type RawPrometheusExportConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Port            int    `yaml:"port"`
	Path            string `yaml:"path"`
	InternalMetrics bool   `yaml:"internal_metrics"`
	Verbosity       string `yaml:"verbosity"`
}

// RawOTELExportConfig defines OTEL push settings
type RawOTELExportConfig struct {
	Enabled   bool              `yaml:"enabled"`
	Transport string            `yaml:"transport"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	Interval  time.Duration     `yaml:"interval"`
	Resource  map[string]string `yaml:"resource,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Verbosity string            `yaml:"verbosity"`
}
