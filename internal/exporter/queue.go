package exporter

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/neox5/metricbox/internal/metric"
)

// Queue hands metrics from producers to sinks through a buffered channel
// drained by a single goroutine. Send never blocks: metrics arriving while
// the buffer is full, or after Close, are dropped and counted.
type Queue struct {
	sink    Sink
	ch      chan *metric.Metric
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

// NewQueue starts a queue delivering to sinks.
func NewQueue(size int, sinks ...Sink) *Queue {
	if size <= 0 {
		size = 256
	}
	q := &Queue{
		sink: Fanout(sinks),
		ch:   make(chan *metric.Metric, size),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

// Send enqueues m. m must not be modified afterwards.
func (q *Queue) Send(m *metric.Metric) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.dropped.Add(1)
		return
	}
	select {
	case q.ch <- m:
	default:
		if q.dropped.Add(1) == 1 {
			slog.Warn("metric queue full, dropping metrics", "capacity", cap(q.ch))
		}
	}
}

// Dropped returns the number of metrics that were not delivered.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Close stops accepting metrics and blocks until queued ones are delivered.
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.ch)
		q.mu.Unlock()
	})
	<-q.done
}

func (q *Queue) loop() {
	defer close(q.done)
	for m := range q.ch {
		q.sink.Send(m)
	}
}
