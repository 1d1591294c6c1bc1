package input

import (
	"github.com/dshills/keyview/internal/input/key"
	"github.com/dshills/keyview/internal/renderer/backend"
)

// KeyEvent converts a backend key event to a key.Event.
func KeyEvent(ev backend.Event) key.Event {
	k := mapBackendKey(ev.Key, ev.Rune)

	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	r := ev.Rune
	if k != key.KeyRune {
		r = 0
	}
	return key.Event{Key: k, Rune: r, Modifiers: mods}
}

func mapBackendKey(bk backend.Key, r rune) key.Key {
	switch bk {
	case backend.KeyRune:
		return key.KeyRune
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	default:
		if r != 0 {
			return key.KeyRune
		}
		return key.KeyNone
	}
}
