package config

import (
	"fmt"
	"maps"
	"time"

	"github.com/neox5/metricbox/internal/metric"
)

const (
	// Exporter verbosity default: accept every metric
	DefaultExportVerbosity = metric.VerbosityDebug

	// Prometheus defaults
	DefaultPrometheusPort = 9090
	DefaultPrometheusPath = "/metrics"

	// OTEL defaults
	DefaultOTELPushInterval = 10 * time.Second
	DefaultOTELTransport    = "grpc"
	DefaultOTELHost         = "localhost"
	DefaultOTELPortGRPC     = 4317
	DefaultOTELPortHTTP     = 4318
	DefaultServiceName      = "metricbox"
	DefaultServiceVersion   = "dev"
)

// ExportConfig defines how metrics are exposed.
type ExportConfig struct {
	QueueSize  int
	Stdout     *StdoutExportConfig
	Prometheus *PrometheusExportConfig
	OTEL       *OTELExportConfig
}

// StdoutExportConfig defines the line protocol writer.
type StdoutExportConfig struct {
	Enabled   bool
	Verbosity metric.Verbosity
}

// PrometheusExportConfig defines Prometheus pull endpoint settings.
type PrometheusExportConfig struct {
	Enabled         bool
	Port            int
	Path            string
	InternalMetrics bool
	Verbosity       metric.Verbosity
}

// OTELExportConfig defines OTEL push settings.
type OTELExportConfig struct {
	Enabled   bool
	Transport string
	Host      string
	Port      int
	Interval  time.Duration
	Resource  map[string]string
	Headers   map[string]string
	Verbosity metric.Verbosity
}

// GetEndpoint returns the full endpoint address.
func (c *OTELExportConfig) GetEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// resolveExport applies defaults and validates export configuration.
func resolveExport(raw *RawExportConfig) (ExportConfig, error) {
	cfg := ExportConfig{QueueSize: raw.QueueSize}

	if cfg.QueueSize == 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.QueueSize < 0 {
		return ExportConfig{}, fmt.Errorf("export: queue_size must be positive, got %d", cfg.QueueSize)
	}

	// Default to Prometheus enabled if no exporters configured
	if raw.Stdout == nil && raw.Prometheus == nil && raw.OTEL == nil {
		cfg.Prometheus = &PrometheusExportConfig{
			Enabled:   true,
			Port:      DefaultPrometheusPort,
			Path:      DefaultPrometheusPath,
			Verbosity: DefaultExportVerbosity,
		}
		return cfg, nil
	}

	if raw.Stdout != nil && raw.Stdout.Enabled {
		stdout, err := resolveStdout(raw.Stdout)
		if err != nil {
			return ExportConfig{}, err
		}
		cfg.Stdout = stdout
	}

	if raw.Prometheus != nil && raw.Prometheus.Enabled {
		prom, err := resolvePrometheus(raw.Prometheus)
		if err != nil {
			return ExportConfig{}, err
		}
		cfg.Prometheus = prom
	}

	if raw.OTEL != nil && raw.OTEL.Enabled {
		otel, err := resolveOTEL(raw.OTEL)
		if err != nil {
			return ExportConfig{}, err
		}
		cfg.OTEL = otel
	}

	if cfg.Stdout == nil && cfg.Prometheus == nil && cfg.OTEL == nil {
		return ExportConfig{}, ErrNoExporter
	}

	return cfg, nil
}

func resolveStdout(raw *RawStdoutExportConfig) (*StdoutExportConfig, error) {
	v, err := resolveVerbosity(raw.Verbosity, DefaultExportVerbosity)
	if err != nil {
		return nil, fmt.Errorf("stdout exporter: %w", err)
	}
	return &StdoutExportConfig{Enabled: true, Verbosity: v}, nil
}

func resolvePrometheus(raw *RawPrometheusExportConfig) (*PrometheusExportConfig, error) {
	c := &PrometheusExportConfig{
		Enabled:         true,
		Port:            raw.Port,
		Path:            raw.Path,
		InternalMetrics: raw.InternalMetrics,
	}

	// Apply defaults
	if c.Port == 0 {
		c.Port = DefaultPrometheusPort
	}
	if c.Path == "" {
		c.Path = DefaultPrometheusPath
	}

	// Validate port range
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid prometheus port: %d", c.Port)
	}

	v, err := resolveVerbosity(raw.Verbosity, DefaultExportVerbosity)
	if err != nil {
		return nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	c.Verbosity = v

	return c, nil
}

func resolveOTEL(raw *RawOTELExportConfig) (*OTELExportConfig, error) {
	c := &OTELExportConfig{
		Enabled:   true,
		Transport: raw.Transport,
		Host:      raw.Host,
		Port:      raw.Port,
		Interval:  raw.Interval,
		Resource:  maps.Clone(raw.Resource),
		Headers:   maps.Clone(raw.Headers),
	}

	// Apply transport default
	if c.Transport == "" {
		c.Transport = DefaultOTELTransport
	}

	// Validate transport
	if c.Transport != "grpc" && c.Transport != "http" {
		return nil, fmt.Errorf("invalid transport: %s (must be grpc or http)", c.Transport)
	}

	// Apply host default
	if c.Host == "" {
		c.Host = DefaultOTELHost
	}

	// Apply port default based on transport
	if c.Port == 0 {
		if c.Transport == "grpc" {
			c.Port = DefaultOTELPortGRPC
		} else {
			c.Port = DefaultOTELPortHTTP
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return nil, fmt.Errorf("invalid otel port: %d", c.Port)
	}

	// Apply interval default
	if c.Interval == 0 {
		c.Interval = DefaultOTELPushInterval
	}
	if c.Interval < 0 {
		return nil, fmt.Errorf("otel interval must be positive, got %s", c.Interval)
	}

	// Apply resource defaults
	if c.Resource == nil {
		c.Resource = make(map[string]string)
	}
	if _, exists := c.Resource["service.name"]; !exists {
		c.Resource["service.name"] = DefaultServiceName
	}
	if _, exists := c.Resource["service.version"]; !exists {
		c.Resource["service.version"] = DefaultServiceVersion
	}

	v, err := resolveVerbosity(raw.Verbosity, DefaultExportVerbosity)
	if err != nil {
		return nil, fmt.Errorf("otel exporter: %w", err)
	}
	c.Verbosity = v

	return c, nil
}
