package key

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta // Cmd on macOS
)

// Has returns true if every bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// modifierTags is the order and spelling of modifiers in Event.String.
var modifierTags = []struct {
	mod Modifier
	tag string
}{
	{ModCtrl, "C"},
	{ModAlt, "A"},
	{ModMeta, "M"},
	{ModShift, "S"},
}
