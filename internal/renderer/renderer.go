package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/keyview/internal/grapheme"
	"github.com/dshills/keyview/internal/renderer/frame"
	"github.com/dshills/keyview/internal/renderer/viewport"
)

// LineSource provides read access to document lines.
type LineSource interface {
	// LineCount returns the total number of lines.
	LineCount() int

	// IsEmpty reports whether the document has no lines.
	IsEmpty() bool

	// LineAt returns the line at index i (0-indexed).
	LineAt(i int) (string, error)
}

// Options configures the renderer.
type Options struct {
	// Banner is shown on an empty document, a third of the way down.
	Banner string

	// Filler marks window rows past the end of the document.
	Filler rune
}

// DefaultOptions returns the default renderer options.
func DefaultOptions() Options {
	return Options{
		Banner: "keyview -- version dev",
		Filler: '~',
	}
}

// Stats describes the frames composed so far.
type Stats struct {
	Frames         uint64
	LastFrameBytes int
	LastDuration   time.Duration
}

// Renderer draws the document through the viewport into a frame and
// flushes it to the output.
type Renderer struct {
	opts  Options
	doc   LineSource
	state *viewport.State
	out   io.Writer
	frame *frame.Buffer
	stats Stats
}

// New creates a renderer. The state is shared with the caller, which
// applies cursor movements between refreshes.
func New(doc LineSource, state *viewport.State, out io.Writer, opts Options) *Renderer {
	if opts.Filler == 0 {
		opts.Filler = DefaultOptions().Filler
	}
	// Rows plus control sequences; grows if lines are wide
	size := (state.Columns() + len(ansi.EraseLineRight) + 2) * state.Rows()
	return &Renderer{
		opts:  opts,
		doc:   doc,
		state: state,
		out:   out,
		frame: frame.New(size),
	}
}

// Refresh composes and writes one full frame.
// The output receives exactly one Write call per Refresh.
func (r *Renderer) Refresh() error {
	start := time.Now()

	r.state.Scroll()

	r.frame.WriteString(ansi.HideCursor)
	r.frame.WriteString(ansi.CursorHomePosition)

	if err := r.drawRows(); err != nil {
		r.frame.Reset()
		return err
	}

	x, _ := r.state.Cursor()
	r.frame.WriteString(ansi.CursorPosition(x+1, r.state.ScreenRow()+1))
	r.frame.WriteString(ansi.ShowCursor)

	n, err := r.frame.FlushTo(r.out)
	if err != nil {
		return fmt.Errorf("flush frame: %w", err)
	}

	r.stats.Frames++
	r.stats.LastFrameBytes = n
	r.stats.LastDuration = time.Since(start)
	return nil
}

// Stats returns frame statistics.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// drawRows writes every window row into the frame.
func (r *Renderer) drawRows() error {
	columns := r.state.Columns()
	lineCount := r.doc.LineCount()
	empty := r.doc.IsEmpty()
	start, end := r.state.VisibleLineRange()
	bannerRow := start + r.state.Rows()/3

	for fileRow := start; fileRow < end; fileRow++ {
		if fileRow > start {
			r.frame.WriteString("\r\n")
		}

		switch {
		case empty && fileRow == bannerRow:
			r.frame.WriteString(r.welcomeRow(columns))
		case fileRow >= lineCount:
			r.frame.WriteRune(r.opts.Filler)
		default:
			line, err := r.doc.LineAt(fileRow)
			if err != nil {
				return fmt.Errorf("draw row %d: %w", fileRow-start, err)
			}
			r.frame.WriteString(printable(grapheme.Truncate(line, columns)))
		}

		r.frame.WriteString(ansi.EraseLineRight)
	}
	return nil
}

// printable replaces control characters so that file content cannot
// move the cursor or start escape sequences. Tabs become a single space
// and other controls become '?', keeping one column per character.
func printable(line string) string {
	if strings.IndexFunc(line, unicode.IsControl) < 0 {
		return line
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return '?'
		default:
			return r
		}
	}, line)
}

// welcomeRow returns the banner centered in the given width.
// The first padding column holds the filler marker.
func (r *Renderer) welcomeRow(columns int) string {
	banner := r.opts.Banner
	if runewidth.StringWidth(banner) > columns {
		banner = runewidth.Truncate(banner, columns, "")
	}

	padding := (columns - runewidth.StringWidth(banner)) / 2

	var sb strings.Builder
	if padding > 0 {
		sb.WriteRune(r.opts.Filler)
		padding--
	}
	sb.WriteString(strings.Repeat(" ", padding))
	sb.WriteString(banner)
	return sb.String()
}
