package viewport

// Direction is a primitive cursor movement.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirHome
	DirEnd
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirHome:
		return "Home"
	case DirEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// Move moves the cursor one step. All movements saturate.
//
// Down advances while y < lineCount, so the cursor may rest one row past
// the last document line.
func (s *State) Move(dir Direction, lineCount int) {
	switch dir {
	case DirUp:
		if s.cursorY > 0 {
			s.cursorY--
		}
	case DirDown:
		if s.cursorY < lineCount {
			s.cursorY++
		}
	case DirLeft:
		if s.cursorX > 0 {
			s.cursorX--
		}
	case DirRight:
		if s.cursorX < s.columns-1 {
			s.cursorX++
		}
	case DirHome:
		s.cursorX = 0
	case DirEnd:
		s.cursorX = s.columns - 1
	}
}

// MoveN applies Move n times.
// Page movement is expressed as MoveN with n equal to the row count.
func (s *State) MoveN(dir Direction, n, lineCount int) {
	for i := 0; i < n; i++ {
		s.Move(dir, lineCount)
	}
}
