package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// createPrometheusRegistry creates a registry serving the sample store and,
// when requested, the Go runtime and process collectors.
func createPrometheusRegistry(s *store, internalMetricsEnabled bool) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Create and register collector
	promRegistry.MustRegister(newCollector(s))

	if internalMetricsEnabled {
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return promRegistry
}
