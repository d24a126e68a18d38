// Package monitor samples process and system resource usage and emits it
// as metrics.
package monitor

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/neox5/metricbox/internal/exporter"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
)

// Metric names emitted by the monitor.
const (
	ProcessCPUPercent       = "process_cpu_percent"
	ProcessRSSBytes         = "process_rss_bytes"
	ProcessThreads          = "process_threads"
	ProcessGoroutines       = "process_goroutines"
	ProcessName             = "process_name"
	SystemMemoryUsedPercent = "system_memory_used_percent"
	SystemCPUPercent        = "system_cpu_percent"
)

// Monitor periodically samples resource usage and sends it to a sink.
type Monitor struct {
	interval   time.Duration
	perCPU     bool
	staticTags []metric.Tag
	sink       exporter.Sink
	logger     *slog.Logger
	source     source
	clock      metric.Clock
	wg         sync.WaitGroup
}

// New creates a monitor sampling every interval. staticTags are attached to
// every metric before its own tags.
func New(
	interval time.Duration,
	perCPU bool,
	staticTags []metric.Tag,
	sink exporter.Sink,
	logger *slog.Logger,
) (*Monitor, error) {
	src, err := newPSSource()
	if err != nil {
		return nil, err
	}
	return newMonitor(interval, perCPU, staticTags, sink, logger, src), nil
}

func newMonitor(
	interval time.Duration,
	perCPU bool,
	staticTags []metric.Tag,
	sink exporter.Sink,
	logger *slog.Logger,
	src source,
) *Monitor {
	return &Monitor{
		interval:   interval,
		perCPU:     perCPU,
		staticTags: slices.Clone(staticTags),
		sink:       sink,
		logger:     logger,
		source:     src,
		clock:      metric.CurrentTimestamp,
	}
}

// Run starts the monitoring loop in a background goroutine.
// The loop exits when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		// Immediate first collection
		m.Collect(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor shutdown complete")
				return
			case <-ticker.C:
				m.Collect(ctx)
			}
		}
	})
}

// Wait blocks until the monitor goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// Collect takes one sample and sends the resulting metrics. It returns the
// number of metrics sent.
func (m *Monitor) Collect(ctx context.Context) int {
	r, err := m.source.read(ctx, m.perCPU)
	if err != nil {
		m.logger.Warn("failed to read resource usage", "error", err)
		return 0
	}

	// One timestamp for the whole sample.
	now := m.clock()
	stamp := metric.WithClock(func() time.Time { return now })

	out := []*metric.Metric{
		m.tagged(metric.NewDouble(r.processCPU, ProcessCPUPercent, stamp), tags.Process).
			AddTag(tags.KeyUnit, tags.Percent),
		m.tagged(metric.NewUint64(r.rssBytes, ProcessRSSBytes, stamp), tags.Process).
			AddTag(tags.KeyUnit, tags.Bytes),
		m.tagged(metric.NewInt(r.threads, ProcessThreads, stamp), tags.Process),
		m.tagged(metric.NewInt(int32(r.goroutines), ProcessGoroutines, stamp), tags.Process),
		m.tagged(metric.NewString(r.processName, ProcessName, stamp,
			metric.WithVerbosity(metric.VerbosityDebug)), tags.Process),
		m.tagged(metric.NewDouble(r.memUsedPercent, SystemMemoryUsedPercent, stamp), tags.System).
			AddTag(tags.KeyUnit, tags.Percent),
	}

	if m.perCPU {
		// Cores are numbered from 1; a numeric 0 reads back as tags.Null.
		for i, pct := range r.cpuPercent {
			out = append(out, m.tagged(
				metric.NewDouble(pct, SystemCPUPercent, stamp, metric.WithVerbosity(metric.VerbosityDebug)),
				tags.System,
			).AddTag(tags.KeyUnit, tags.Percent).AddNumericTag(tags.KeyCPU, uint16(i+1)))
		}
	} else if len(r.cpuPercent) > 0 {
		out = append(out, m.tagged(metric.NewDouble(r.cpuPercent[0], SystemCPUPercent, stamp), tags.System).
			AddTag(tags.KeyUnit, tags.Percent))
	}

	for _, mt := range out {
		m.sink.Send(mt)
	}

	m.logger.Debug("collected resource usage",
		"metrics", len(out),
		"cpu", r.processCPU,
		"rss", r.rssBytes,
		"goroutines", r.goroutines)

	cores := runtime.GOMAXPROCS(-1)
	if utilization := r.processCPU / float64(cores*100); utilization > 0.95 {
		m.logger.Warn(
			"cpu saturation detected",
			"cpu", r.processCPU,
			"util_pct", utilization*100,
			"action", "reduce load or increase GOMAXPROCS",
		)
	}

	return len(out)
}

// tagged attaches the static tags followed by the subsystem tag.
func (m *Monitor) tagged(mt *metric.Metric, subsystem tags.Value) *metric.Metric {
	return mt.SetTags(slices.Clone(m.staticTags)).AddTag(tags.KeySubsystem, subsystem)
}
