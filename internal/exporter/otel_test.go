package exporter

import (
	"context"
	"testing"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestOTELExporter(t *testing.T) (*OTELExporter, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	cfg := &config.OTELExportConfig{
		Enabled:   true,
		Transport: config.DefaultOTELTransport,
		Host:      config.DefaultOTELHost,
		Port:      config.DefaultOTELPortGRPC,
		Interval:  config.DefaultOTELPushInterval,
	}
	return newOTELExporter(cfg, mp), reader
}

func collectGauge(t *testing.T, reader *sdkmetric.ManualReader, name string) (metricdata.Gauge[float64], bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			g, ok := m.Data.(metricdata.Gauge[float64])
			require.True(t, ok, "metric %s is %T", name, m.Data)
			return g, true
		}
	}
	return metricdata.Gauge[float64]{}, false
}

func TestOTELExporterObservesLatest(t *testing.T) {
	e, reader := newTestOTELExporter(t)

	e.Send(metric.NewInt(41, "cpu_usage", at(0)).
		AddNumericTag(tags.KeyHost, 7).
		AddTag(tags.KeyState, tags.Running))
	e.Send(metric.NewInt(42, "cpu_usage", at(1)).
		AddNumericTag(tags.KeyHost, 7).
		AddTag(tags.KeyState, tags.Running))

	g, ok := collectGauge(t, reader, "cpu_usage")
	require.True(t, ok)
	require.Len(t, g.DataPoints, 1)

	dp := g.DataPoints[0]
	assert.Equal(t, 42.0, dp.Value)

	host, ok := dp.Attributes.Value(attribute.Key("host"))
	require.True(t, ok)
	assert.Equal(t, attribute.INT64, host.Type())
	assert.Equal(t, int64(7), host.AsInt64())

	state, ok := dp.Attributes.Value(attribute.Key("state"))
	require.True(t, ok)
	assert.Equal(t, "running", state.AsString())
}

func TestOTELExporterSeries(t *testing.T) {
	e, reader := newTestOTELExporter(t)

	e.Send(metric.NewUint64(100, "rss", at(0)).AddNumericTag(tags.KeyHost, 1))
	e.Send(metric.NewUint64(200, "rss", at(0)).AddNumericTag(tags.KeyHost, 2))

	g, ok := collectGauge(t, reader, "rss")
	require.True(t, ok)
	assert.Len(t, g.DataPoints, 2)
}

func TestOTELExporterSkipsStrings(t *testing.T) {
	e, reader := newTestOTELExporter(t)

	e.Send(metric.NewString("running", "state"))

	_, ok := collectGauge(t, reader, "state")
	assert.False(t, ok)
	assert.Zero(t, e.store.len())
}

func TestOTELExporterStartStop(t *testing.T) {
	e, _ := newTestOTELExporter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, e.Start(ctx))
}

func TestCreateOTELResource(t *testing.T) {
	res, err := createOTELResource(map[string]string{"service.name": "flp"})
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "flp", name.AsString())

	id, ok := set.Value(attribute.Key(instanceIDKey))
	require.True(t, ok)
	assert.NotEmpty(t, id.AsString())

	res, err = createOTELResource(map[string]string{instanceIDKey: "node-1"})
	require.NoError(t, err)
	id, _ = res.Set().Value(attribute.Key(instanceIDKey))
	assert.Equal(t, "node-1", id.AsString())
}

func TestCreateOTLPExporterUnsupportedTransport(t *testing.T) {
	_, err := createOTLPExporter(&config.OTELExportConfig{Transport: "udp", Host: "localhost", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported otel transport")
}
