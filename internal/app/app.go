package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/exporter"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/monitor"
)

// App holds initialized application components.
type App struct {
	Config             *config.Config
	Monitor            *monitor.Monitor
	Queue              *exporter.Queue
	StdoutExporter     *exporter.LineProtocolExporter
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
}

// New initializes the application from a resolved configuration. Line
// protocol output goes to stdout.
//
// The process-wide default verbosity is set from the configuration before
// any metric is created.
func New(cfg *config.Config, stdout io.Writer, logger *slog.Logger) (*App, error) {
	metric.SetDefaultVerbosity(cfg.Settings.Verbosity)

	a := &App{Config: cfg}
	var sinks []exporter.Sink

	// Create line protocol exporter if enabled
	if cfg.Export.Stdout != nil && cfg.Export.Stdout.Enabled {
		a.StdoutExporter = exporter.NewLineProtocolExporter(stdout)
		sinks = append(sinks, exporter.Filter(a.StdoutExporter, cfg.Export.Stdout.Verbosity))
	}

	// Create Prometheus exporter if enabled
	if cfg.Export.Prometheus != nil && cfg.Export.Prometheus.Enabled {
		a.PrometheusExporter = exporter.NewPrometheusExporter(cfg.Export.Prometheus)
		sinks = append(sinks, exporter.Filter(a.PrometheusExporter, cfg.Export.Prometheus.Verbosity))
	}

	// Create OTEL exporter if enabled
	if cfg.Export.OTEL != nil && cfg.Export.OTEL.Enabled {
		otelExporter, err := exporter.NewOTELExporter(cfg.Export.OTEL)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
		a.OTELExporter = otelExporter
		sinks = append(sinks, exporter.Filter(a.OTELExporter, cfg.Export.OTEL.Verbosity))
	}

	a.Queue = exporter.NewQueue(cfg.Export.QueueSize, sinks...)

	mon, err := monitor.New(cfg.Monitor.Interval, cfg.Monitor.PerCPU, cfg.Monitor.Tags, a.Queue, logger)
	if err != nil {
		a.Queue.Close()
		return nil, fmt.Errorf("failed to create monitor: %w", err)
	}
	a.Monitor = mon

	logger.Info("application initialized",
		"exporters", len(sinks),
		"default_verbosity", cfg.Settings.Verbosity,
		"queue_size", cfg.Export.QueueSize)

	return a, nil
}

// Close drains the queue. Metrics sent afterwards are dropped.
func (a *App) Close() {
	a.Queue.Close()
	if dropped := a.Queue.Dropped(); dropped > 0 {
		slog.Warn("metrics dropped", "count", dropped)
	}
}
