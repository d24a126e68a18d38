// Package metric holds the in-process representation of a single
// measurement: a name, a capture timestamp, one typed value, ordered
// integer-coded tags and a verbosity level.
//
// A Metric is built and decorated on one goroutine and then handed to a
// sink. It carries no locks.
package metric

import "time"

// Clock returns the current time.
type Clock func() time.Time

// CurrentTimestamp is the default clock.
func CurrentTimestamp() time.Time {
	return time.Now()
}

// Metric is one measurement event.
type Metric struct {
	name      string
	timestamp time.Time
	value     Value
	tags      []Tag
	verbosity Verbosity
}

// Option customizes metric construction.
type Option func(*options)

type options struct {
	verbosity    Verbosity
	hasVerbosity bool
	clock        Clock
}

// WithVerbosity sets the metric's verbosity instead of the process default.
func WithVerbosity(v Verbosity) Option {
	return func(o *options) {
		o.verbosity = v
		o.hasVerbosity = true
	}
}

// WithClock sets the clock used to stamp the metric. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// NewInt creates an int32 metric.
func NewInt(v int32, name string, opts ...Option) *Metric {
	return newMetric(Int(v), name, opts)
}

// NewString creates a string metric.
func NewString(v string, name string, opts ...Option) *Metric {
	return newMetric(String(v), name, opts)
}

// NewDouble creates a float64 metric.
func NewDouble(v float64, name string, opts ...Option) *Metric {
	return newMetric(Double(v), name, opts)
}

// NewUint64 creates a uint64 metric.
func NewUint64(v uint64, name string, opts ...Option) *Metric {
	return newMetric(Uint64(v), name, opts)
}

// New creates a metric from an existing value. It panics if v is nil.
func New(v Value, name string, opts ...Option) *Metric {
	if v == nil {
		panic("metric: nil value for " + name)
	}
	return newMetric(v, name, opts)
}

func newMetric(v Value, name string, opts []Option) *Metric {
	o := options{clock: CurrentTimestamp}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasVerbosity {
		o.verbosity = DefaultVerbosity()
	}

	return &Metric{
		name:      name,
		timestamp: o.clock(),
		value:     v,
		verbosity: o.verbosity,
	}
}

// Name returns the metric name.
func (m *Metric) Name() string { return m.name }

// Timestamp returns the capture time.
func (m *Metric) Timestamp() time.Time { return m.timestamp }

// Value returns a copy of the metric value.
func (m *Metric) Value() Value { return m.value }

// Type returns the ordinal of the active value variant.
func (m *Metric) Type() Type { return m.value.Type() }

// Verbosity returns the verbosity resolved at construction.
func (m *Metric) Verbosity() Verbosity { return m.verbosity }
