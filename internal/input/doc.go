// Package input turns terminal key events into viewer intents.
//
// A Dispatcher polls an EventSource with a bounded timeout, converts
// backend key events into key.Event values and classifies them:
//
//   - Ctrl+q quits
//   - arrows, Home and End move the cursor once
//   - PageUp and PageDown move the cursor one window height
//
// Everything else classifies as a no-op.
//
// # Usage
//
//	d := input.NewDispatcher(backend, rows, 500*time.Millisecond)
//	for {
//	    intent, err := d.NextIntent(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    if intent.Kind == input.IntentQuit {
//	        return nil
//	    }
//	    // apply intent
//	}
package input
