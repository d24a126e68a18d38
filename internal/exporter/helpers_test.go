package exporter

import (
	"time"

	"github.com/neox5/metricbox/internal/metric"
)

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// fixedClock returns a clock that always reports at.
func fixedClock(at time.Time) metric.Clock {
	return func() time.Time { return at }
}

// at builds an option that stamps metrics offset from testTime.
func at(offset time.Duration) metric.Option {
	return metric.WithClock(fixedClock(testTime.Add(offset)))
}
