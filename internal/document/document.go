package document

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// LineEnding identifies the line terminator detected in a file.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	default:
		return "\\n"
	}
}

// Store is an immutable, ordered sequence of lines.
type Store struct {
	path       string
	lines      []string
	lineEnding LineEnding
}

// New creates a store over the given lines. The slice is copied.
func New(lines []string) *Store {
	owned := make([]string, len(lines))
	copy(owned, lines)
	return &Store{lines: owned}
}

// FromString splits text into lines.
//
// Lines are split on '\n' and a single trailing '\r' is removed from
// each line. A final line terminator does not produce an extra empty
// line, so "a\nb\n" and "a\nb" both hold two lines.
func FromString(text string) *Store {
	s := &Store{}
	if strings.Contains(text, "\r\n") {
		s.lineEnding = LineEndingCRLF
	}
	if text == "" {
		return s
	}

	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	s.lines = make([]string, len(parts))
	for i, p := range parts {
		s.lines[i] = strings.TrimSuffix(p, "\r")
	}
	return s
}

// Load reads the file at path into a new store.
// An empty path returns an empty store.
func Load(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Err: ErrInvalidEncoding}
	}

	s := FromString(string(data))
	s.path = path
	return s, nil
}

// Path returns the file the store was loaded from, or "" if none.
func (s *Store) Path() string {
	return s.path
}

// LineEnding returns the line terminator detected when loading.
func (s *Store) LineEnding() LineEnding {
	return s.lineEnding
}

// LineCount returns the number of lines.
func (s *Store) LineCount() int {
	return len(s.lines)
}

// IsEmpty returns true if the store holds no lines.
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// LineAt returns the line at index i.
// Returns ErrLineOutOfRange if i is not in [0, LineCount()).
func (s *Store) LineAt(i int) (string, error) {
	if i < 0 || i >= len(s.lines) {
		return "", fmt.Errorf("%w: %d (line count %d)", ErrLineOutOfRange, i, len(s.lines))
	}
	return s.lines[i], nil
}
