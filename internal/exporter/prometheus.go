package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusExporter serves the latest value of every series over HTTP.
type PrometheusExporter struct {
	addr         string
	path         string
	server       *http.Server
	promRegistry *prometheus.Registry
	store        *store
}

// NewPrometheusExporter creates a new Prometheus HTTP exporter.
func NewPrometheusExporter(cfg *config.PrometheusExportConfig) *PrometheusExporter {
	s := newStore()
	promRegistry := createPrometheusRegistry(s, cfg.InternalMetrics)
	addr := fmt.Sprintf(":%d", cfg.Port)

	slog.Info("registered prometheus exporter",
		"addr", addr,
		"path", cfg.Path,
		"verbosity", cfg.Verbosity)

	return &PrometheusExporter{
		addr:         addr,
		path:         cfg.Path,
		server:       createHTTPServer(addr, cfg.Path, promRegistry, s, cfg.InternalMetrics),
		promRegistry: promRegistry,
		store:        s,
	}
}

// Send records m as the latest sample of its series.
func (e *PrometheusExporter) Send(m *metric.Metric) {
	e.store.put(m)
}

// Handler returns the HTTP handler serving the metrics path.
func (e *PrometheusExporter) Handler() http.Handler {
	return e.server.Handler
}

// Registry returns the underlying Prometheus registry.
func (e *PrometheusExporter) Registry() *prometheus.Registry {
	return e.promRegistry
}

// Start serves HTTP requests until ctx is cancelled.
func (e *PrometheusExporter) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		slog.Info("starting prometheus exporter", "addr", e.addr, "path", e.path)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return e.Stop()
	}
}

// Stop gracefully stops the exporter.
func (e *PrometheusExporter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down prometheus exporter", "series", e.store.len())
	return e.server.Shutdown(ctx)
}
