package exporter

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/neox5/metricbox/internal/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// collector implements an unchecked prometheus.Collector over the latest
// samples. Label sets are not known ahead of time, so Describe sends nothing.
type collector struct {
	store *store
}

// newCollector creates a collector reading from s.
func newCollector(s *store) *collector {
	return &collector{store: s}
}

// Describe sends no descriptors.
func (c *collector) Describe(chan<- *prometheus.Desc) {}

// Collect converts every stored sample to a gauge.
// This is called on each Prometheus scrape.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	series := promSeries(c.store.snapshot())
	slog.Debug("prometheus collect", "series", len(series))

	for _, ps := range series {
		m, err := ps.metric()
		if err != nil {
			slog.Debug("skipping series", "name", ps.name, "error", err)
			continue
		}
		ch <- m
	}
}

// promSample is a stored sample in its exposition form.
type promSample struct {
	name        string
	labelNames  []string
	labelValues []string
	value       float64
	timestamp   time.Time
}

// newPromSample maps s to its exposition form. Numeric values keep the
// metric name; string values become "<name>_info" with the string in a
// "value" label and a constant 1. Label names that sanitize to the same
// name keep the first position and the last value.
func newPromSample(s sample) promSample {
	ps := promSample{name: sanitizeName(s.name), timestamp: s.timestamp}

	index := make(map[string]int, len(s.labels)+1)
	setLabel := func(name, value string) {
		if i, ok := index[name]; ok {
			ps.labelValues[i] = value
			return
		}
		index[name] = len(ps.labelNames)
		ps.labelNames = append(ps.labelNames, name)
		ps.labelValues = append(ps.labelValues, value)
	}
	for _, l := range s.labels {
		setLabel(sanitizeName(l.Name), l.Value)
	}

	val, numeric := metric.AsFloat64(s.value)
	if !numeric {
		ps.name += "_info"
		setLabel("value", string(s.value.(metric.String)))
		val = 1
	}
	ps.value = val
	return ps
}

// identity is the exposed series: final name plus label pairs sorted by
// name, matching how Prometheus compares series.
func (ps promSample) identity() string {
	order := make([]int, len(ps.labelNames))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return strings.Compare(ps.labelNames[a], ps.labelNames[b])
	})

	var b strings.Builder
	b.WriteString(ps.name)
	for _, i := range order {
		b.WriteByte(0)
		b.WriteString(ps.labelNames[i])
		b.WriteByte('=')
		b.WriteString(ps.labelValues[i])
	}
	return b.String()
}

func (ps promSample) metric() (prometheus.Metric, error) {
	desc := prometheus.NewDesc(ps.name, "metricbox metric "+ps.name, ps.labelNames, nil)
	return prometheus.NewConstMetric(desc, prometheus.GaugeValue, ps.value, ps.labelValues...)
}

// promSeries collapses samples that expose as the same series, keeping the
// newest. Order follows the first occurrence in samples.
func promSeries(samples []sample) []promSample {
	out := make([]promSample, 0, len(samples))
	index := make(map[string]int, len(samples))
	for _, s := range samples {
		ps := newPromSample(s)
		id := ps.identity()
		if i, ok := index[id]; ok {
			if !ps.timestamp.Before(out[i].timestamp) {
				out[i] = ps
			}
			continue
		}
		index[id] = len(out)
		out = append(out, ps)
	}
	return out
}
