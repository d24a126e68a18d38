package exporter

import (
	"context"
	"log/slog"

	"github.com/neox5/metricbox/internal/metric"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// ensureGauge creates the observable gauge for name on first use.
func (e *OTELExporter) ensureGauge(name string) {
	e.mu.RLock()
	_, exists := e.gauges[name]
	e.mu.RUnlock()
	if exists {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := e.gauges[name]; exists {
		return
	}

	gauge, err := e.meter.Float64ObservableGauge(
		name,
		otelmetric.WithDescription("metricbox metric "+name),
		otelmetric.WithFloat64Callback(e.observe(name)),
	)
	if err != nil {
		// Remember the failure so the name is not retried on every send.
		e.gauges[name] = nil
		slog.Warn("failed to create otel gauge", "name", name, "error", err)
		return
	}

	e.gauges[name] = gauge
	slog.Info("registered otel metric", "name", name)
}

// observe returns the callback reporting the latest samples of name.
func (e *OTELExporter) observe(name string) otelmetric.Float64Callback {
	return func(_ context.Context, o otelmetric.Float64Observer) error {
		samples := e.store.byName(name)
		slog.Debug("otel observe", "name", name, "series", len(samples))

		for _, s := range samples {
			val, ok := metric.AsFloat64(s.value)
			if !ok {
				continue
			}
			o.Observe(val, otelmetric.WithAttributes(toAttributes(s.labels)...))
		}
		return nil
	}
}

// toAttributes converts labels, keeping numeric tags as integers.
func toAttributes(labels []label) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		if l.Numeric {
			attrs = append(attrs, attribute.Int(l.Name, int(l.Number)))
			continue
		}
		attrs = append(attrs, attribute.String(l.Name, l.Value))
	}
	return attrs
}
