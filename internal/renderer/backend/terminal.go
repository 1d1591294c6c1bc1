package backend

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend using tcell.
//
// tcell owns raw mode, window geometry and key decoding. Frames bypass
// tcell's cell buffer and go straight to the screen's tty, so Show is
// never called.
type Terminal struct {
	screen tcell.Screen
	out    io.Writer

	events chan tcell.Event
	quit   chan struct{}

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, os.Stdout), nil
}

// NewTerminalWithScreen creates a backend over an existing screen.
// Output goes to the screen's tty when it has one, otherwise to out.
func NewTerminalWithScreen(screen tcell.Screen, out io.Writer) *Terminal {
	return &Terminal{screen: screen, out: out}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	if tty, ok := t.screen.Tty(); ok {
		t.out = tty
	}

	t.events = make(chan tcell.Event, 64)
	t.quit = make(chan struct{})
	go t.screen.ChannelEvents(t.events, t.quit)

	t.started = true
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if !started {
		return
	}

	t.stopOnce.Do(func() {
		close(t.quit)
		t.screen.Fini()

		t.mu.Lock()
		t.started = false
		t.mu.Unlock()
	})
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) PollEvent(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.events:
		if !ok {
			return Event{Type: EventClosed}, true
		}
		return convertEvent(ev), true
	case <-timer.C:
		return Event{}, false
	}
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return 0, ErrNotInitialized
	}
	return t.out.Write(p)
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, r, mod := convertKey(e)
		return Event{
			Type: EventKey,
			Key:  k,
			Rune: r,
			Mod:  mod,
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key event to our key, rune and modifiers.
// Control letters are normalized to KeyRune with a lowercase rune and
// ModCtrl, whichever encoding the terminal used.
func convertKey(e *tcell.EventKey) (Key, rune, ModMask) {
	mod := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		return KeyRune, e.Rune(), mod
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeyRune, 'a' + rune(k-tcell.KeyCtrlA), mod | ModCtrl
	case k >= tcell.KeySOH && k <= tcell.KeySUB && mod.Has(ModCtrl):
		// Raw ASCII control codes, as produced by tcell.NewEventKey
		return KeyRune, 'a' + rune(k-tcell.KeySOH), mod
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		return KeyFunction, 0, mod
	}

	switch k {
	case tcell.KeyEscape:
		return KeyEscape, 0, mod
	case tcell.KeyEnter:
		return KeyEnter, 0, mod
	case tcell.KeyTab:
		return KeyTab, 0, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0, mod
	case tcell.KeyDelete:
		return KeyDelete, 0, mod
	case tcell.KeyInsert:
		return KeyInsert, 0, mod
	case tcell.KeyHome:
		return KeyHome, 0, mod
	case tcell.KeyEnd:
		return KeyEnd, 0, mod
	case tcell.KeyPgUp:
		return KeyPageUp, 0, mod
	case tcell.KeyPgDn:
		return KeyPageDown, 0, mod
	case tcell.KeyUp:
		return KeyUp, 0, mod
	case tcell.KeyDown:
		return KeyDown, 0, mod
	case tcell.KeyLeft:
		return KeyLeft, 0, mod
	case tcell.KeyRight:
		return KeyRight, 0, mod
	default:
		return KeyNone, 0, mod
	}
}

// convertMod converts tcell modifiers to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= ModMeta
	}
	return mod
}
