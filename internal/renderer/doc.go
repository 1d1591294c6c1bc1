// Package renderer composes the terminal frame for the viewer.
//
// Each refresh cycle the Renderer reconciles the scroll offset with the
// cursor, draws every window row into a frame buffer and hands the frame
// to the terminal in one write:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Refresh)            │
//	├─────────────────────────────────────────┤
//	│  viewport.State   │  document lines     │
//	├─────────────────────────────────────────┤
//	│  frame.Buffer  →  backend (one write)   │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	state := viewport.New(width, height)
//	r := renderer.New(store, state, term, renderer.DefaultOptions())
//	if err := r.Refresh(); err != nil {
//	    return err
//	}
package renderer
