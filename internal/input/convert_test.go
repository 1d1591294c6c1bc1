package input

import (
	"testing"

	"github.com/dshills/keyview/internal/input/key"
	"github.com/dshills/keyview/internal/renderer/backend"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name     string
		ev       backend.Event
		wantKey  key.Key
		wantRune rune
		wantMods key.Modifier
	}{
		{
			name:     "rune",
			ev:       backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'},
			wantKey:  key.KeyRune,
			wantRune: 'x',
		},
		{
			name:     "ctrl rune",
			ev:       backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q', Mod: backend.ModCtrl},
			wantKey:  key.KeyRune,
			wantRune: 'q',
			wantMods: key.ModCtrl,
		},
		{
			name:     "page down with shift and alt",
			ev:       backend.Event{Type: backend.EventKey, Key: backend.KeyPageDown, Mod: backend.ModShift | backend.ModAlt},
			wantKey:  key.KeyPageDown,
			wantMods: key.ModShift | key.ModAlt,
		},
		{
			name:     "meta",
			ev:       backend.Event{Type: backend.EventKey, Key: backend.KeyUp, Mod: backend.ModMeta},
			wantKey:  key.KeyUp,
			wantMods: key.ModMeta,
		},
		{
			name:    "function key",
			ev:      backend.Event{Type: backend.EventKey, Key: backend.KeyFunction},
			wantKey: key.KeyNone,
		},
		{
			name:    "special key drops stray rune",
			ev:      backend.Event{Type: backend.EventKey, Key: backend.KeyEnter, Rune: '\r'},
			wantKey: key.KeyEnter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyEvent(tt.ev)
			if got.Key != tt.wantKey {
				t.Errorf("expected key %v, got %v", tt.wantKey, got.Key)
			}
			if got.Rune != tt.wantRune {
				t.Errorf("expected rune %q, got %q", tt.wantRune, got.Rune)
			}
			if got.Modifiers != tt.wantMods {
				t.Errorf("expected modifiers %v, got %v", tt.wantMods, got.Modifiers)
			}
		})
	}
}
