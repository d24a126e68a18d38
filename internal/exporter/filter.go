package exporter

import "github.com/neox5/metricbox/internal/metric"

type verbosityFilter struct {
	inner Sink
	max   metric.Verbosity
}

// Filter returns a sink that forwards only metrics whose verbosity is at or
// below max.
func Filter(inner Sink, max metric.Verbosity) Sink {
	return &verbosityFilter{inner: inner, max: max}
}

func (f *verbosityFilter) Send(m *metric.Metric) {
	if m.Verbosity() > f.max {
		return
	}
	f.inner.Send(m)
}
