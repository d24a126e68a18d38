package config

import (
	"errors"
	"time"

	"github.com/neox5/metricbox/internal/metric"
)

const (
	// Settings defaults
	DefaultVerbosity = metric.VerbosityInfo

	// Monitor defaults
	DefaultMonitorInterval = 5 * time.Second

	// Export defaults
	DefaultQueueSize = 256
)

var (
	// ErrNoExporter is returned when no exporter is enabled.
	ErrNoExporter = errors.New("at least one exporter must be enabled")

	// ErrInvalidVerbosity is returned for unknown verbosity names.
	ErrInvalidVerbosity = errors.New("invalid verbosity")
)

// Config holds the complete application configuration.
type Config struct {
	Settings SettingsConfig
	Monitor  MonitorConfig
	Export   ExportConfig
}

// MonitorConfig defines the process sampler.
type MonitorConfig struct {
	Interval time.Duration
	PerCPU   bool
	Tags     []metric.Tag
}
