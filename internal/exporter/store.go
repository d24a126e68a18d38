package exporter

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/neox5/metricbox/internal/metric"
)

// sample is the latest observation of one series.
type sample struct {
	key       string
	name      string
	labels    []label
	value     metric.Value
	timestamp time.Time
}

// store keeps the latest sample per series for pull-style exporters. A
// series is a metric name plus its ordered tag list.
type store struct {
	mu      sync.RWMutex
	samples map[string]sample
}

func newStore() *store {
	return &store{samples: make(map[string]sample)}
}

// put records m, replacing an older sample of the same series.
func (s *store) put(m *metric.Metric) {
	key := seriesKey(m)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.samples[key]; ok && m.Timestamp().Before(prev.timestamp) {
		return
	}
	s.samples[key] = sample{
		key:       key,
		name:      m.Name(),
		labels:    uniqueLabels(m.Tags()),
		value:     m.Value(),
		timestamp: m.Timestamp(),
	}
}

// snapshot returns all samples ordered by series key.
func (s *store) snapshot() []sample {
	s.mu.RLock()
	out := make([]sample, 0, len(s.samples))
	for _, smp := range s.samples {
		out = append(out, smp)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b sample) int { return strings.Compare(a.key, b.key) })
	return out
}

// byName returns the samples of one metric name ordered by series key.
func (s *store) byName(name string) []sample {
	s.mu.RLock()
	var out []sample
	for _, smp := range s.samples {
		if smp.name == name {
			out = append(out, smp)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b sample) int { return strings.Compare(a.key, b.key) })
	return out
}

// len returns the number of series.
func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

func seriesKey(m *metric.Metric) string {
	var b strings.Builder
	b.WriteString(m.Name())
	for _, t := range m.Tags() {
		b.WriteByte(0)
		b.WriteString(strconv.FormatInt(int64(t.Key), 10))
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(int64(t.Value), 10))
	}
	return b.String()
}
