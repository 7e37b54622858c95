package usecase

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics accumulates generation outcomes for the lifetime of the process.
//
// All methods are safe for concurrent use. The counters are lock-free; the
// latency sum and its sample count change together under latencyMu.
type Metrics struct {
	generated  atomic.Int64
	collisions atomic.Int64
	failures   atomic.Int64

	latencyMu sync.Mutex
	// latencyNanos is the sum of all recorded success durations.
	latencyNanos int64
	samples      int64
}

// MetricsSnapshot is a point-in-time read of Metrics.
type MetricsSnapshot struct {
	TotalGenerated  int64
	TotalCollisions int64
	TotalFailures   int64
	MeanLatency     time.Duration
}

// MeanLatencyMs returns the mean generation latency in milliseconds.
func (s MetricsSnapshot) MeanLatencyMs() float64 {
	return float64(s.MeanLatency) / float64(time.Millisecond)
}

// NewMetrics returns a zeroed recorder.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordSuccess counts one generated tracking number and its latency.
func (m *Metrics) RecordSuccess(d time.Duration) {
	m.latencyMu.Lock()
	m.latencyNanos += int64(d)
	m.samples++
	m.latencyMu.Unlock()

	m.generated.Add(1)
}

// RecordCollision counts one candidate rejected as already taken.
func (m *Metrics) RecordCollision() {
	m.collisions.Add(1)
}

// RecordFailure counts one call that ended without a tracking number.
func (m *Metrics) RecordFailure() {
	m.failures.Add(1)
}

// Snapshot returns the current counters and mean latency.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		TotalGenerated:  m.generated.Load(),
		TotalCollisions: m.collisions.Load(),
		TotalFailures:   m.failures.Load(),
	}

	m.latencyMu.Lock()
	sum, n := m.latencyNanos, m.samples
	m.latencyMu.Unlock()

	if n > 0 {
		snap.MeanLatency = time.Duration(sum / n)
	}

	return snap
}
