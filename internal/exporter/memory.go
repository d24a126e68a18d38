package exporter

import (
	"slices"
	"sync"

	"github.com/neox5/metricbox/internal/metric"
)

// Memory records every metric it receives.
type Memory struct {
	mu      sync.Mutex
	metrics []*metric.Metric
}

// NewMemory creates an empty recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// Send records m.
func (s *Memory) Send(m *metric.Metric) {
	s.mu.Lock()
	s.metrics = append(s.metrics, m)
	s.mu.Unlock()
}

// Metrics returns the recorded metrics in arrival order.
func (s *Memory) Metrics() []*metric.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.metrics)
}

// Len returns the number of recorded metrics.
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.metrics)
}
