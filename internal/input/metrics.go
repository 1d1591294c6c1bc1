package input

import (
	"sync/atomic"
	"time"
)

// Metrics tracks input processing.
type Metrics struct {
	keyEventsTotal     atomic.Uint64
	ignoredEventsTotal atomic.Uint64
	idlePollsTotal     atomic.Uint64
	intents            [IntentMoveRepeated + 1]atomic.Uint64

	// Peak classification latency (all time)
	peakKeyLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKeyEvent records a classified key event.
func (m *Metrics) RecordKeyEvent(kind IntentKind, latency time.Duration) {
	m.keyEventsTotal.Add(1)
	if int(kind) < len(m.intents) {
		m.intents[kind].Add(1)
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}
}

// RecordIgnoredEvent records a non-key event such as a resize.
func (m *Metrics) RecordIgnoredEvent() {
	m.ignoredEventsTotal.Add(1)
}

// RecordIdlePoll records a poll that timed out without an event.
func (m *Metrics) RecordIdlePoll() {
	m.idlePollsTotal.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal     uint64
	IgnoredEventsTotal uint64
	IdlePollsTotal     uint64

	Noops     uint64
	Quits     uint64
	Moves     uint64
	PageMoves uint64

	PeakKeyLatency time.Duration
	Uptime         time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		KeyEventsTotal:     m.keyEventsTotal.Load(),
		IgnoredEventsTotal: m.ignoredEventsTotal.Load(),
		IdlePollsTotal:     m.idlePollsTotal.Load(),
		Noops:              m.intents[IntentNoop].Load(),
		Quits:              m.intents[IntentQuit].Load(),
		Moves:              m.intents[IntentMove].Load(),
		PageMoves:          m.intents[IntentMoveRepeated].Load(),
		PeakKeyLatency:     time.Duration(m.peakKeyLatency.Load()),
		Uptime:             time.Since(m.startTime),
	}
}
