package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
settings:
  verbosity: prod
monitor:
  interval: 2s
  per_cpu: true
  tags:
    subsystem: monitoring
    run: 42
    detector: QC
export:
  queue_size: 64
  stdout:
    enabled: true
    verbosity: debug
  prometheus:
    enabled: true
    port: 9191
    internal_metrics: true
    verbosity: info
  otel:
    enabled: true
    transport: http
    interval: 30s
    resource:
      service.name: flp-monitor
    headers:
      x-tenant: alice
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, metric.VerbosityProd, cfg.Settings.Verbosity)

	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.True(t, cfg.Monitor.PerCPU)
	assert.Equal(t, []metric.Tag{
		metric.EnumTag(tags.KeySubsystem, tags.Monitoring),
		metric.NumericTag(tags.KeyRun, 42),
		metric.EnumTag(tags.KeyDetector, tags.QC),
	}, cfg.Monitor.Tags)

	assert.Equal(t, 64, cfg.Export.QueueSize)

	require.NotNil(t, cfg.Export.Stdout)
	assert.Equal(t, metric.VerbosityDebug, cfg.Export.Stdout.Verbosity)

	require.NotNil(t, cfg.Export.Prometheus)
	assert.Equal(t, 9191, cfg.Export.Prometheus.Port)
	assert.Equal(t, DefaultPrometheusPath, cfg.Export.Prometheus.Path)
	assert.True(t, cfg.Export.Prometheus.InternalMetrics)
	assert.Equal(t, metric.VerbosityInfo, cfg.Export.Prometheus.Verbosity)

	require.NotNil(t, cfg.Export.OTEL)
	assert.Equal(t, "http", cfg.Export.OTEL.Transport)
	assert.Equal(t, "localhost:4318", cfg.Export.OTEL.GetEndpoint())
	assert.Equal(t, 30*time.Second, cfg.Export.OTEL.Interval)
	assert.Equal(t, "flp-monitor", cfg.Export.OTEL.Resource["service.name"])
	assert.Equal(t, DefaultServiceVersion, cfg.Export.OTEL.Resource["service.version"])
	assert.Equal(t, map[string]string{"x-tenant": "alice"}, cfg.Export.OTEL.Headers)
	assert.Equal(t, DefaultExportVerbosity, cfg.Export.OTEL.Verbosity)
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultVerbosity, cfg.Settings.Verbosity)
	assert.Equal(t, DefaultMonitorInterval, cfg.Monitor.Interval)
	assert.Equal(t, DefaultQueueSize, cfg.Export.QueueSize)
	require.NotNil(t, cfg.Export.Prometheus)
	assert.Equal(t, DefaultPrometheusPort, cfg.Export.Prometheus.Port)
	assert.Nil(t, cfg.Export.Stdout)
	assert.Nil(t, cfg.Export.OTEL)
}

func TestLoadOTELGRPCDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
export:
  otel:
    enabled: true
`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Export.OTEL)
	assert.Equal(t, "grpc", cfg.Export.OTEL.Transport)
	assert.Equal(t, "localhost:4317", cfg.Export.OTEL.GetEndpoint())
	assert.Equal(t, DefaultOTELPushInterval, cfg.Export.OTEL.Interval)
	assert.Equal(t, DefaultServiceName, cfg.Export.OTEL.Resource["service.name"])
	assert.Nil(t, cfg.Export.Prometheus)
}

func TestLoadErrors(t *testing.T) {
	tt := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name: "all exporters disabled",
			content: `
export:
  stdout:
    enabled: false
`,
			wantErr: ErrNoExporter,
		},
		{
			name: "bad default verbosity",
			content: `
settings:
  verbosity: loud
`,
			wantErr: ErrInvalidVerbosity,
		},
		{
			name: "bad exporter verbosity",
			content: `
export:
  stdout:
    enabled: true
    verbosity: trace
`,
			wantErr: ErrInvalidVerbosity,
		},
		{
			name: "unknown tag key",
			content: `
monitor:
  tags:
    rack: readout
`,
			wantMsg: "unknown tag key",
		},
		{
			name: "numeric tag out of range",
			content: `
monitor:
  tags:
    run: 70000
`,
			wantMsg: "out of range",
		},
		{
			name: "tags not a mapping",
			content: `
monitor:
  tags: [a, b]
`,
			wantMsg: "tags must be a mapping",
		},
		{
			name: "unknown field",
			content: `
monitor:
  period: 5s
`,
			wantMsg: "failed to parse YAML",
		},
		{
			name: "invalid otel transport",
			content: `
export:
  otel:
    enabled: true
    transport: udp
`,
			wantMsg: "invalid transport",
		},
		{
			name: "invalid prometheus port",
			content: `
export:
  prometheus:
    enabled: true
    port: 70000
`,
			wantMsg: "invalid prometheus port",
		},
		{
			name: "negative interval",
			content: `
monitor:
  interval: -1s
`,
			wantMsg: "interval must be positive",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNumericZeroTagFromConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
monitor:
  tags:
    cru: 0
`))
	require.NoError(t, err)

	// Same pair as the enumerated null value.
	assert.Equal(t, []metric.Tag{metric.EnumTag(tags.KeyCRU, tags.Null)}, cfg.Monitor.Tags)
}

func TestSampleConfigStaticTags(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Monitor.Tags)

	// The monitor adds these keys itself.
	for _, tag := range cfg.Monitor.Tags {
		assert.NotContains(t, []tags.Key{tags.KeySubsystem, tags.KeyUnit, tags.KeyCPU}, tag.TagKey())
	}
}
