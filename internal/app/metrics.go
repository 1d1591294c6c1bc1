package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks session performance.
type Metrics struct {
	// Frame timing
	frameCount     atomic.Uint64
	frameTotalNs   atomic.Int64
	frameMinNs     atomic.Int64
	frameMaxNs     atomic.Int64
	lastFrameNs    atomic.Int64
	frameBytes     atomic.Uint64
	lastFrameBytes atomic.Int64

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records one composed and flushed frame.
func (m *Metrics) RecordFrame(duration time.Duration, bytes int) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)
	m.frameBytes.Add(uint64(bytes))
	m.lastFrameBytes.Store(int64(bytes))

	for {
		old := m.frameMinNs.Load()
		if ns >= old {
			break
		}
		if m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.frameMaxNs.Load()
		if ns <= old {
			break
		}
		if m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordInput records the wait for one key press.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	inputCount := m.inputCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgInputNs int64
	if inputCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(inputCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		FrameBytes:     m.frameBytes.Load(),
		LastFrameBytes: int(m.lastFrameBytes.Load()),
		InputCount:     inputCount,
		AvgInputTimeNs: avgInputNs,
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	FrameBytes     uint64
	LastFrameBytes int
	InputCount     uint64
	AvgInputTimeNs int64
}

// AvgFrameBytes returns the mean frame size.
func (s MetricsSnapshot) AvgFrameBytes() uint64 {
	if s.FrameCount == 0 {
		return 0
	}
	return s.FrameBytes / s.FrameCount
}
