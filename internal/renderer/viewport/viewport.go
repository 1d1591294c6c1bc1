// Package viewport tracks the cursor and the visible slice of the document.
package viewport

// State holds the cursor position, the vertical scroll offset and the
// window dimensions.
//
// The cursor's X is a window column. Its Y is a document row: combined
// with the row offset it addresses the document, while the row count is
// only the size of the visible slice. Y is therefore clamped against the
// document length, never against the window height.
//
// State is owned by a single session loop and is not safe for concurrent
// use.
type State struct {
	cursorX int
	cursorY int

	// First document line shown at window row 0
	rowOffset int

	columns int
	rows    int
}

// New creates a state for a window of the given size.
// Columns and rows are clamped to a minimum of 1 to prevent underflow.
func New(columns, rows int) *State {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &State{
		columns: columns,
		rows:    rows,
	}
}

// Columns returns the window width.
func (s *State) Columns() int {
	return s.columns
}

// Rows returns the window height.
func (s *State) Rows() int {
	return s.rows
}

// Cursor returns the cursor column and document row.
func (s *State) Cursor() (x, y int) {
	return s.cursorX, s.cursorY
}

// RowOffset returns the first visible document line.
func (s *State) RowOffset() int {
	return s.rowOffset
}

// ScreenRow returns the window row the cursor occupies.
// Only meaningful after Scroll has reconciled the offset.
func (s *State) ScreenRow() int {
	return s.cursorY - s.rowOffset
}

// VisibleLineRange returns the half-open range of document lines covered
// by the window, [start, end).
func (s *State) VisibleLineRange() (start, end int) {
	return s.rowOffset, s.rowOffset + s.rows
}
