package exporter

import (
	"testing"
	"time"

	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKeepsLatest(t *testing.T) {
	s := newStore()

	s.put(metric.NewInt(1, "load", at(time.Second)).AddNumericTag(tags.KeyHost, 1))
	s.put(metric.NewInt(2, "load", at(2*time.Second)).AddNumericTag(tags.KeyHost, 1))
	// Older sample is ignored.
	s.put(metric.NewInt(0, "load", at(0)).AddNumericTag(tags.KeyHost, 1))

	samples := s.snapshot()
	require.Len(t, samples, 1)
	assert.Equal(t, metric.Int(2), samples[0].value)
	assert.Equal(t, testTime.Add(2*time.Second), samples[0].timestamp)
}

func TestStoreSeparatesSeries(t *testing.T) {
	s := newStore()

	s.put(metric.NewInt(1, "load", at(0)).AddNumericTag(tags.KeyHost, 1))
	s.put(metric.NewInt(2, "load", at(0)).AddNumericTag(tags.KeyHost, 2))
	s.put(metric.NewInt(3, "load", at(0)))
	s.put(metric.NewDouble(0.5, "other", at(0)))

	assert.Equal(t, 4, s.len())
	assert.Len(t, s.byName("load"), 3)
	assert.Len(t, s.byName("other"), 1)
	assert.Empty(t, s.byName("missing"))
}

func TestSeriesKeyTagOrder(t *testing.T) {
	a := metric.NewInt(1, "x").AddTag(tags.KeyState, tags.Running).AddNumericTag(tags.KeyHost, 1)
	b := metric.NewInt(1, "x").AddNumericTag(tags.KeyHost, 1).AddTag(tags.KeyState, tags.Running)

	assert.NotEqual(t, seriesKey(a), seriesKey(b))
	assert.Equal(t, seriesKey(a), seriesKey(metric.NewInt(9, "x").SetTags(a.Tags())))
}
