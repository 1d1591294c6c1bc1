package key

import (
	"strings"
	"unicode"
)

// Event is one decoded key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsUnmodified returns true if no modifier is held.
func (e Event) IsUnmodified() bool {
	return e.Modifiers == ModNone
}

// IsCtrlRune reports whether the event is Ctrl plus the given letter,
// ignoring case. Terminals disagree on whether Ctrl+Shift+q arrives as
// 'q' or 'Q'.
func (e Event) IsCtrlRune(r rune) bool {
	return e.IsRune() && e.Modifiers.Has(ModCtrl) &&
		unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// String returns a compact name such as "a", "C-q", "Up" or "S-End".
// Shift is omitted for runes since it is already part of the character.
func (e Event) String() string {
	var sb strings.Builder
	for _, mt := range modifierTags {
		if !e.Modifiers.Has(mt.mod) || (mt.mod == ModShift && e.IsRune()) {
			continue
		}
		sb.WriteString(mt.tag)
		sb.WriteByte('-')
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		sb.WriteString("Space")
	case e.Key == KeyRune:
		sb.WriteRune(e.Rune)
	case e.Key == KeyPageUp:
		sb.WriteString("PgUp")
	case e.Key == KeyPageDown:
		sb.WriteString("PgDn")
	case e.Key == KeyEscape:
		sb.WriteString("Esc")
	default:
		sb.WriteString(e.Key.String())
	}
	return sb.String()
}
