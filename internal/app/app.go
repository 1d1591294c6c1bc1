// Package app wires the keyview session together: configuration,
// logging, the document, the terminal backend and the refresh loop.
package app

import (
	"context"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/dshills/keyview/internal/config"
	"github.com/dshills/keyview/internal/document"
	"github.com/dshills/keyview/internal/input"
	"github.com/dshills/keyview/internal/renderer"
	"github.com/dshills/keyview/internal/renderer/backend"
	"github.com/dshills/keyview/internal/renderer/viewport"
)

// Version is the program version shown in the banner.
// Set via ldflags during build.
var Version = "dev"

// Application is one viewer session.
type Application struct {
	mu sync.Mutex

	config  config.Config
	logger  *Logger
	logFile *os.File
	metrics *Metrics

	doc        *document.Store
	backend    backend.Backend
	state      *viewport.State
	renderer   *renderer.Renderer
	dispatcher *input.Dispatcher

	running      atomic.Bool
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// File is the document to view. Empty opens an empty document.
	File string

	// ConfigPath is an explicit configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// configOptions are appended to the config.Load options.
	configOptions []config.Option
}

// New loads configuration, opens the log and reads the document.
// An unreadable document is reported as a *FileError.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		logger:  NullLogger,
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	cfgOpts := []config.Option{
		config.WithFile(app.opts.ConfigPath),
		config.WithOverrides(app.flagOverrides()),
	}
	cfgOpts = append(cfgOpts, app.opts.configOptions...)

	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	if err := app.openLog(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	for _, path := range cfg.Unknown {
		app.logger.Warn("ignoring unknown setting %s", path)
	}

	doc, err := document.Load(app.opts.File)
	if err != nil {
		app.logger.Error("cannot open %s: %v", app.opts.File, err)
		return &FileError{Op: "open", Path: app.opts.File, Err: err}
	}
	app.doc = doc

	app.logger.Info("opened %q: %d lines (%s)", doc.Path(), doc.LineCount(), doc.LineEnding())
	return nil
}

// flagOverrides maps command-line options onto config settings.
func (app *Application) flagOverrides() map[string]any {
	logging := make(map[string]any)
	if app.opts.LogLevel != "" {
		logging["level"] = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		logging["file"] = app.opts.LogFile
	}
	if len(logging) == 0 {
		return nil
	}
	return map[string]any{"logging": logging}
}

func (app *Application) openLog() error {
	if app.config.Logging.File == "" {
		return nil
	}

	f, err := OpenLogFile(app.config.Logging.File)
	if err != nil {
		return err
	}
	app.logFile = f

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.config.Logging.Level)
	cfg.Output = f
	app.logger = NewLogger(cfg).WithField("session", uuid.NewString())
	return nil
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// SetBackend initializes the terminal backend, which puts it in raw
// mode, and builds the viewport, renderer and input dispatcher for its
// window size. The size is read once.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	if err := b.Init(); err != nil {
		app.logger.Error("backend init: %v", err)
		return &InitError{Component: "backend", Err: err}
	}
	app.backend = b

	columns, rows := b.Size()
	if columns <= 0 || rows <= 0 {
		app.logger.Error("window size %dx%d", columns, rows)
		return &InitError{Component: "backend", Err: ErrNoWindowSize}
	}

	app.state = viewport.New(columns, rows)
	app.renderer = renderer.New(app.doc, app.state, b, renderer.Options{
		Banner: app.config.BannerText(Version),
		Filler: app.config.Viewer.Filler,
	})
	app.dispatcher = input.NewDispatcher(b, rows, app.config.Viewer.PollInterval)

	app.logger.Info("window %dx%d", columns, rows)
	return nil
}

// Run refreshes the screen and applies key presses until the user quits,
// which returns nil. Any other exit returns the error that caused it.
// A panic inside the loop restores the terminal and is returned as a
// *PanicError.
func (app *Application) Run(ctx context.Context) (err error) {
	app.mu.Lock()
	ready := app.renderer != nil
	app.mu.Unlock()
	if !ready {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v", err)
			app.Shutdown()
		}
	}()

	return app.eventLoop(ctx)
}

// IsRunning returns true if the session loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown clears the screen, restores the terminal, logs metrics and
// closes the log. Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()

		if b != nil {
			if _, err := b.Write([]byte(ansi.EraseEntireScreen + ansi.CursorHomePosition)); err != nil {
				app.logger.Warn("clear screen: %v", err)
			}
			b.Shutdown()
		}

		app.logMetrics()
		app.closeLog()
	})
}

func (app *Application) logMetrics() {
	snap := app.metrics.Snapshot()
	app.logger.WithComponent("metrics").Info(
		"uptime=%s frames=%d avg_frame=%dns max_frame=%dns avg_bytes=%d inputs=%d",
		snap.Uptime, snap.FrameCount, snap.AvgFrameTimeNs, snap.MaxFrameTimeNs,
		snap.AvgFrameBytes(), snap.InputCount,
	)

	if app.dispatcher != nil {
		in := app.dispatcher.Metrics().Snapshot()
		app.logger.WithComponent("input").Info(
			"keys=%d moves=%d pages=%d noops=%d ignored=%d idle_polls=%d",
			in.KeyEventsTotal, in.Moves, in.PageMoves, in.Noops,
			in.IgnoredEventsTotal, in.IdlePollsTotal,
		)
	}
}

// Config returns the loaded configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// Document returns the document being viewed.
func (app *Application) Document() *document.Store {
	return app.doc
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}
