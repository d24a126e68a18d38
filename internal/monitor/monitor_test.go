package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/exporter"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	r   reading
	err error
}

func (f *fakeSource) read(context.Context, bool) (reading, error) {
	return f.r, f.err
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testReading() reading {
	return reading{
		processName:    "metricbox",
		processCPU:     12.5,
		rssBytes:       4096,
		threads:        9,
		goroutines:     4,
		memUsedPercent: 40,
		cpuPercent:     []float64{10, 20},
	}
}

func byName(ms []*metric.Metric) map[string][]*metric.Metric {
	out := make(map[string][]*metric.Metric)
	for _, m := range ms {
		out[m.Name()] = append(out[m.Name()], m)
	}
	return out
}

func TestCollectPerCPU(t *testing.T) {
	mem := exporter.NewMemory()
	static := []metric.Tag{metric.NumericTag(tags.KeyRun, 42)}
	m := newMonitor(time.Second, true, static, mem, discardLogger, &fakeSource{r: testReading()})

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.clock = func() time.Time { return now }

	n := m.Collect(context.Background())
	require.Equal(t, 8, n)
	require.Equal(t, 8, mem.Len())

	got := byName(mem.Metrics())

	cpuPct := got[ProcessCPUPercent][0]
	assert.Equal(t, metric.Double(12.5), cpuPct.Value())
	assert.Equal(t, []metric.Tag{
		metric.NumericTag(tags.KeyRun, 42),
		metric.EnumTag(tags.KeySubsystem, tags.Process),
		metric.EnumTag(tags.KeyUnit, tags.Percent),
	}, cpuPct.Tags())

	assert.Equal(t, metric.Uint64(4096), got[ProcessRSSBytes][0].Value())
	assert.Equal(t, metric.Int(9), got[ProcessThreads][0].Value())
	assert.Equal(t, metric.Int(4), got[ProcessGoroutines][0].Value())

	name := got[ProcessName][0]
	assert.Equal(t, metric.String("metricbox"), name.Value())
	assert.Equal(t, metric.VerbosityDebug, name.Verbosity())

	sysCPU := got[SystemCPUPercent]
	require.Len(t, sysCPU, 2)
	for i, mt := range sysCPU {
		assert.Equal(t, metric.VerbosityDebug, mt.Verbosity())
		tagList := mt.Tags()
		last := tagList[len(tagList)-1]
		assert.Equal(t, tags.KeyCPU, last.TagKey())
		assert.True(t, last.IsNumeric())
		assert.Equal(t, uint16(i+1), last.Number())
	}

	for _, mt := range mem.Metrics() {
		assert.Equal(t, now, mt.Timestamp(), mt.Name())
		assert.Equal(t, metric.NumericTag(tags.KeyRun, 42), mt.Tags()[0], mt.Name())
	}
}

func TestCollectPerCPUPrometheusLabels(t *testing.T) {
	prom := exporter.NewPrometheusExporter(&config.PrometheusExportConfig{
		Enabled:   true,
		Port:      config.DefaultPrometheusPort,
		Path:      config.DefaultPrometheusPath,
		Verbosity: metric.VerbosityDebug,
	})
	m := newMonitor(time.Second, true, nil, prom, discardLogger, &fakeSource{r: testReading()})

	m.Collect(context.Background())

	expected := `
# HELP system_cpu_percent metricbox metric system_cpu_percent
# TYPE system_cpu_percent gauge
system_cpu_percent{cpu="1",subsystem="system",unit="%"} 10
system_cpu_percent{cpu="2",subsystem="system",unit="%"} 20
`
	err := testutil.GatherAndCompare(prom.Registry(), strings.NewReader(expected), SystemCPUPercent)
	require.NoError(t, err)
}

func TestCollectAggregateCPU(t *testing.T) {
	r := testReading()
	r.cpuPercent = []float64{15}

	mem := exporter.NewMemory()
	m := newMonitor(time.Second, false, nil, mem, discardLogger, &fakeSource{r: r})

	require.Equal(t, 7, m.Collect(context.Background()))

	sysCPU := byName(mem.Metrics())[SystemCPUPercent]
	require.Len(t, sysCPU, 1)
	assert.Equal(t, metric.Double(15), sysCPU[0].Value())
	assert.Equal(t, metric.DefaultVerbosity(), sysCPU[0].Verbosity())
	assert.Equal(t, []metric.Tag{
		metric.EnumTag(tags.KeySubsystem, tags.System),
		metric.EnumTag(tags.KeyUnit, tags.Percent),
	}, sysCPU[0].Tags())
}

func TestCollectSourceError(t *testing.T) {
	mem := exporter.NewMemory()
	m := newMonitor(time.Second, false, nil, mem, discardLogger, &fakeSource{err: errors.New("boom")})

	assert.Zero(t, m.Collect(context.Background()))
	assert.Zero(t, mem.Len())
}

func TestStaticTagsNotShared(t *testing.T) {
	static := []metric.Tag{metric.EnumTag(tags.KeyDetector, tags.QC)}
	mem := exporter.NewMemory()
	m := newMonitor(time.Second, false, static, mem, discardLogger, &fakeSource{r: testReading()})

	static[0] = metric.EnumTag(tags.KeyDetector, tags.Readout)
	m.Collect(context.Background())

	for _, mt := range mem.Metrics() {
		assert.Equal(t, metric.EnumTag(tags.KeyDetector, tags.QC), mt.Tags()[0])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	mem := exporter.NewMemory()
	m := newMonitor(time.Hour, false, nil, mem, discardLogger, &fakeSource{r: testReading()})

	ctx, cancel := context.WithCancel(context.Background())
	m.Run(ctx)

	require.Eventually(t, func() bool { return mem.Len() > 0 }, time.Second, time.Millisecond)
	cancel()
	m.Wait()

	assert.Equal(t, 7, mem.Len())
}
