package viewport

// Scroll reconciles the row offset with the cursor so that afterwards
// RowOffset() <= y <= RowOffset()+Rows()-1.
//
// The offset first follows the cursor up, then shifts down if the cursor
// is below the window. No previous cursor position is needed and calling
// Scroll again without moving the cursor changes nothing.
func (s *State) Scroll() {
	if s.cursorY < s.rowOffset {
		s.rowOffset = s.cursorY
	}
	if s.cursorY >= s.rowOffset+s.rows {
		s.rowOffset = s.cursorY - s.rows + 1
	}
}
