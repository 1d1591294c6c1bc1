package input

import (
	"fmt"

	"github.com/dshills/keyview/internal/renderer/viewport"
)

// IntentKind identifies what a key press asks the viewer to do.
type IntentKind uint8

const (
	// IntentNoop means the key has no binding.
	IntentNoop IntentKind = iota
	// IntentQuit ends the session.
	IntentQuit
	// IntentMove moves the cursor once.
	IntentMove
	// IntentMoveRepeated moves the cursor Count times.
	IntentMoveRepeated
)

// String returns a string representation of the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentNoop:
		return "noop"
	case IntentQuit:
		return "quit"
	case IntentMove:
		return "move"
	case IntentMoveRepeated:
		return "move-repeated"
	default:
		return "unknown"
	}
}

// Intent is the classified meaning of one key press.
type Intent struct {
	Kind      IntentKind
	Direction viewport.Direction
	Count     int
}

// Noop returns an intent that does nothing.
func Noop() Intent {
	return Intent{Kind: IntentNoop}
}

// Quit returns an intent that ends the session.
func Quit() Intent {
	return Intent{Kind: IntentQuit}
}

// Move returns an intent that moves the cursor once.
func Move(dir viewport.Direction) Intent {
	return Intent{Kind: IntentMove, Direction: dir, Count: 1}
}

// MoveRepeated returns an intent that moves the cursor n times.
func MoveRepeated(dir viewport.Direction, n int) Intent {
	return Intent{Kind: IntentMoveRepeated, Direction: dir, Count: n}
}

// Apply performs the intent's cursor movement on state.
// Noop and Quit leave the state untouched.
func (i Intent) Apply(state *viewport.State, lineCount int) {
	switch i.Kind {
	case IntentMove:
		state.Move(i.Direction, lineCount)
	case IntentMoveRepeated:
		state.MoveN(i.Direction, i.Count, lineCount)
	}
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentMove:
		return fmt.Sprintf("move(%s)", i.Direction)
	case IntentMoveRepeated:
		return fmt.Sprintf("move(%s x%d)", i.Direction, i.Count)
	default:
		return i.Kind.String()
	}
}
