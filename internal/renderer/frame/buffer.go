// Package frame provides the per-refresh output accumulator.
//
// A Buffer collects every control sequence and row of text for one
// refresh cycle and hands them to the terminal in a single write.
package frame

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when bytes written to a Buffer are not
// valid UTF-8. Nothing is appended in that case.
var ErrInvalidUTF8 = errors.New("frame: invalid UTF-8")

// Buffer is an append-only text accumulator.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	sb strings.Builder
}

// New creates a buffer with capacity preallocated for size bytes.
func New(size int) *Buffer {
	b := &Buffer{}
	if size > 0 {
		b.sb.Grow(size)
	}
	return b
}

// Write appends p, which must be valid UTF-8.
// Invalid input is rejected with a zero count and ErrInvalidUTF8.
func (b *Buffer) Write(p []byte) (int, error) {
	if !utf8.Valid(p) {
		return 0, ErrInvalidUTF8
	}
	return b.sb.Write(p)
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.sb.WriteString(s)
}

// WriteRune appends r.
func (b *Buffer) WriteRune(r rune) (int, error) {
	return b.sb.WriteRune(r)
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return b.sb.Len()
}

// String returns the buffered contents.
func (b *Buffer) String() string {
	return b.sb.String()
}

// Reset discards the buffered contents.
func (b *Buffer) Reset() {
	b.sb.Reset()
}

// FlushTo writes the whole buffer to w with a single Write call and then
// resets the buffer. The buffer is reset even when the write fails.
// An empty buffer performs no write.
func (b *Buffer) FlushTo(w io.Writer) (int, error) {
	defer b.Reset()

	if b.sb.Len() == 0 {
		return 0, nil
	}
	n, err := io.WriteString(w, b.sb.String())
	if err == nil && n < b.sb.Len() {
		err = io.ErrShortWrite
	}
	return n, err
}
