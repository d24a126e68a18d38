package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/metric"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/neox5/metricbox"

// OTELExporter pushes the latest value of every numeric series to an OTEL
// collector. String metrics are not exported.
type OTELExporter struct {
	config        *config.OTELExportConfig
	meterProvider *sdkmetric.MeterProvider
	meter         otelmetric.Meter
	store         *store

	mu     sync.RWMutex
	gauges map[string]otelmetric.Float64ObservableGauge
}

// NewOTELExporter creates a new OTEL exporter.
func NewOTELExporter(cfg *config.OTELExportConfig) (*OTELExporter, error) {
	res, err := createOTELResource(cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider, err := createMeterProvider(cfg, res)
	if err != nil {
		return nil, err
	}

	slog.Info("registered otel exporter",
		"transport", cfg.Transport,
		"endpoint", cfg.GetEndpoint(),
		"verbosity", cfg.Verbosity)

	return newOTELExporter(cfg, meterProvider), nil
}

// newOTELExporter creates an exporter on an existing meter provider.
func newOTELExporter(cfg *config.OTELExportConfig, mp *sdkmetric.MeterProvider) *OTELExporter {
	return &OTELExporter{
		config:        cfg,
		meterProvider: mp,
		meter:         mp.Meter(meterName),
		store:         newStore(),
		gauges:        make(map[string]otelmetric.Float64ObservableGauge),
	}
}

// Send records m as the latest sample of its series.
func (e *OTELExporter) Send(m *metric.Metric) {
	if m.Type() == metric.TypeString {
		slog.Debug("otel exporter skips string metric", "name", m.Name())
		return
	}
	e.store.put(m)
	e.ensureGauge(m.Name())
}

// Start blocks until ctx is cancelled, then shuts the exporter down. The
// periodic reader pushes on its own schedule.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"endpoint", e.config.GetEndpoint(),
		"push_interval", e.config.Interval,
	)

	<-ctx.Done()
	return e.Stop()
}

// Stop flushes pending data and shuts the meter provider down.
func (e *OTELExporter) Stop() error {
	slog.Info("shutting down otel exporter")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("otel shutdown: %w", err)
	}
	return nil
}
