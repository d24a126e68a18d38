// Package exporter hands finished metrics to their consumers: an in-memory
// recorder, an InfluxDB line protocol writer, a Prometheus pull endpoint and
// an OTLP push exporter.
//
// Producers build a metric on their own goroutine and pass it to a Sink. The
// Queue is the only point where a metric crosses goroutines; a metric must
// not be modified after it has been sent.
package exporter

import "github.com/neox5/metricbox/internal/metric"

// Sink consumes finished metrics.
type Sink interface {
	Send(m *metric.Metric)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(m *metric.Metric)

// Send calls f(m).
func (f SinkFunc) Send(m *metric.Metric) { f(m) }

// Fanout sends every metric to each sink in order.
type Fanout []Sink

// Send forwards m to all sinks.
func (f Fanout) Send(m *metric.Metric) {
	for _, s := range f {
		s.Send(m)
	}
}

// Discard drops every metric.
var Discard Sink = SinkFunc(func(*metric.Metric) {})
