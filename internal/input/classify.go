package input

import (
	"github.com/dshills/keyview/internal/input/key"
	"github.com/dshills/keyview/internal/renderer/viewport"
)

// quitRune is pressed together with Ctrl to leave the viewer.
const quitRune = 'q'

var stepDirections = map[key.Key]viewport.Direction{
	key.KeyUp:    viewport.DirUp,
	key.KeyDown:  viewport.DirDown,
	key.KeyLeft:  viewport.DirLeft,
	key.KeyRight: viewport.DirRight,
	key.KeyHome:  viewport.DirHome,
	key.KeyEnd:   viewport.DirEnd,
}

// Classify maps a key event to an intent. rows is the window height
// used for page movement. Modified navigation keys are not bound.
func Classify(ev key.Event, rows int) Intent {
	if ev.IsCtrlRune(quitRune) {
		return Quit()
	}
	if !ev.Key.IsNavigation() || !ev.IsUnmodified() {
		return Noop()
	}

	switch ev.Key {
	case key.KeyPageUp:
		return MoveRepeated(viewport.DirUp, rows)
	case key.KeyPageDown:
		return MoveRepeated(viewport.DirDown, rows)
	default:
		return Move(stepDirections[ev.Key])
	}
}
