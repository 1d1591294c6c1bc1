package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/keyview/internal/input"
)

// eventLoop composes a frame, waits for one key press and applies it.
// Quit returns before anything else is drawn.
func (app *Application) eventLoop(ctx context.Context) error {
	log := app.logger.WithComponent("loop")

	for {
		if err := app.refresh(); err != nil {
			log.Error("refresh: %v", err)
			return err
		}

		start := time.Now()
		intent, err := app.dispatcher.NextIntent(ctx)
		if err != nil {
			log.Info("input ended: %v", err)
			return fmt.Errorf("read input: %w", err)
		}
		app.metrics.RecordInput(time.Since(start))

		if log.Enabled(LogLevelDebug) {
			x, y := app.state.Cursor()
			log.Debug("%s -> %s at (%d, %d)", app.dispatcher.LastKey(), intent, x, y)
		}

		if intent.Kind == input.IntentQuit {
			return nil
		}
		intent.Apply(app.state, app.doc.LineCount())
	}
}

func (app *Application) refresh() error {
	if err := app.renderer.Refresh(); err != nil {
		return err
	}
	stats := app.renderer.Stats()
	app.metrics.RecordFrame(stats.LastDuration, stats.LastFrameBytes)
	return nil
}
