package input

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/keyview/internal/input/key"
	"github.com/dshills/keyview/internal/renderer/backend"
)

// DefaultPollInterval bounds each wait for input.
const DefaultPollInterval = 500 * time.Millisecond

// ErrInputClosed is returned when the event source has no more events.
var ErrInputClosed = errors.New("input source closed")

// EventSource supplies terminal events. backend.Backend satisfies it.
type EventSource interface {
	PollEvent(timeout time.Duration) (backend.Event, bool)
}

// Dispatcher waits for key presses and classifies them.
type Dispatcher struct {
	source   EventSource
	interval time.Duration
	rows     int
	metrics  *Metrics
	lastKey  key.Event
}

// NewDispatcher creates a dispatcher. rows is the page size used for
// PageUp and PageDown. A non-positive interval uses DefaultPollInterval.
func NewDispatcher(source EventSource, rows int, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Dispatcher{
		source:   source,
		interval: interval,
		rows:     rows,
		metrics:  NewMetrics(),
	}
}

// Metrics returns the dispatcher's metrics.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// LastKey returns the key press behind the most recent intent.
func (d *Dispatcher) LastKey() key.Event {
	return d.lastKey
}

// NextIntent blocks until a key is pressed and returns its intent.
// Timeouts and non-key events are absorbed; the context is checked
// between poll slices.
func (d *Dispatcher) NextIntent(ctx context.Context) (Intent, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Intent{}, err
		}

		ev, ok := d.source.PollEvent(d.interval)
		if !ok {
			d.metrics.RecordIdlePoll()
			continue
		}

		switch ev.Type {
		case backend.EventClosed:
			return Intent{}, ErrInputClosed
		case backend.EventKey:
			start := time.Now()
			d.lastKey = KeyEvent(ev)
			intent := Classify(d.lastKey, d.rows)
			d.metrics.RecordKeyEvent(intent.Kind, time.Since(start))
			return intent, nil
		default:
			d.metrics.RecordIgnoredEvent()
		}
	}
}
