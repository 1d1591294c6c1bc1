// Package backend provides the terminal boundary for the viewer: raw mode,
// window geometry, key events and the output stream frames are written to.
package backend

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventClosed reports that the event source has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
// Control-letter combinations are reported as KeyRune with ModCtrl.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFunction // F1-F64; the viewer does not distinguish them
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// ErrNotInitialized is returned when writing to a backend before Init.
var ErrNotInitialized = errors.New("backend not initialized")

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init puts the terminal into raw mode.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores the terminal state. Safe to call more than once.
	Shutdown()

	// Size returns the terminal dimensions in columns and rows.
	Size() (width, height int)

	// PollEvent waits up to timeout for the next event.
	// Returns false if no event arrived in time.
	PollEvent(timeout time.Duration) (Event, bool)

	// Write sends raw bytes, including control sequences, to the terminal.
	Write(p []byte) (int, error)
}

// NullBackend is an in-memory backend for testing.
// It records every Write call and serves events posted with PostEvent.
type NullBackend struct {
	mu sync.Mutex

	width, height int
	events        chan Event

	initErr  error
	writeErr error

	output     bytes.Buffer
	writes     int
	lastWrite  []byte
	inited     bool
	shutdowns  int
	closedOnce sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

// SetInitError makes the next Init call fail with err.
func (b *NullBackend) SetInitError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initErr = err
}

// SetWriteError makes subsequent writes fail with err.
func (b *NullBackend) SetWriteError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initErr != nil {
		return b.initErr
	}
	b.inited = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inited = false
	b.shutdowns++
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) PollEvent(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-b.events:
		if !ok {
			return Event{Type: EventClosed}, true
		}
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

func (b *NullBackend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inited {
		return 0, ErrNotInitialized
	}
	if b.writeErr != nil {
		return 0, b.writeErr
	}
	b.writes++
	b.lastWrite = append(b.lastWrite[:0], p...)
	return b.output.Write(p)
}

// PostEvent queues an event. Events are dropped if the queue is full.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// PostKey queues a key event.
func (b *NullBackend) PostKey(k Key, r rune, mod ModMask) {
	b.PostEvent(Event{Type: EventKey, Key: k, Rune: r, Mod: mod})
}

// Close closes the event queue; later polls report EventClosed.
func (b *NullBackend) Close() {
	b.closedOnce.Do(func() { close(b.events) })
}

// Output returns everything written so far.
func (b *NullBackend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output.String()
}

// LastWrite returns the payload of the most recent Write call.
func (b *NullBackend) LastWrite() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.lastWrite)
}

// Writes returns the number of Write calls.
func (b *NullBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Initialized reports whether the backend is between Init and Shutdown.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inited
}

// Shutdowns returns the number of Shutdown calls.
func (b *NullBackend) Shutdowns() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdowns
}
