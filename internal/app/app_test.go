package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/dshills/keyview/internal/config"
	"github.com/dshills/keyview/internal/input"
	"github.com/dshills/keyview/internal/renderer/backend"
)

// emptyFS has no files, so the per-user config file is never found.
type emptyFS struct{}

func (emptyFS) ReadFile(string) ([]byte, error)    { return nil, fs.ErrNotExist }
func (emptyFS) Stat(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func testOptions(file string) Options {
	return Options{
		File: file,
		configOptions: []config.Option{
			config.WithFileSystem(emptyFS{}),
			config.WithEnv(nil),
		},
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// newSession creates an application attached to a NullBackend.
func newSession(t *testing.T, file string, columns, rows int) (*Application, *backend.NullBackend) {
	t.Helper()

	app, err := New(testOptions(file))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(app.Shutdown)

	b := backend.NewNullBackend(columns, rows)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	app.dispatcher = input.NewDispatcher(b, rows, 5*time.Millisecond)
	return app, b
}

func postQuit(b *backend.NullBackend) {
	b.PostKey(backend.KeyRune, 'q', backend.ModCtrl)
}

func TestNew_EmptyDocument(t *testing.T) {
	app, err := New(testOptions(""))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.Document().LineCount() != 0 {
		t.Errorf("expected empty document, got %d lines", app.Document().LineCount())
	}
	if app.Logger() != NullLogger {
		t.Error("expected logging to be disabled without a log file")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning() to be false before Run()")
	}
}

func TestNew_UnreadableFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := New(testOptions(missing))

	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FileError, got %v", err)
	}
	if ferr.Path != missing {
		t.Errorf("expected path %q, got %q", missing, ferr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestNew_MissingConfigFile(t *testing.T) {
	opts := testOptions("")
	opts.ConfigPath = filepath.Join(t.TempDir(), "nope.toml")

	_, err := New(opts)

	var ierr *InitError
	if !errors.As(err, &ierr) || ierr.Component != "config" {
		t.Fatalf("expected config *InitError, got %v", err)
	}
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "keyview.toml")
	if err := os.WriteFile(cfgPath, []byte("[viewer]\nbanner = \"hi {version}\"\nfiller = \".\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{ConfigPath: cfgPath, configOptions: []config.Option{config.WithEnv(nil)}}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.Config().Viewer.Filler != '.' {
		t.Errorf("expected filler '.', got %q", app.Config().Viewer.Filler)
	}
	if got := app.Config().BannerText(Version); got != "hi "+Version {
		t.Errorf("unexpected banner %q", got)
	}
}

func TestNew_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keyview.log")

	opts := testOptions(writeFile(t, "one\ntwo\n"))
	opts.LogFile = logPath
	opts.LogLevel = "debug"

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	app.Shutdown()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"2 lines", "session=", "component=metrics"} {
		if !strings.Contains(log, want) {
			t.Errorf("expected log to contain %q:\n%s", want, log)
		}
	}
}

func TestRun_LogsKeyPresses(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keyview.log")

	opts := testOptions(writeFile(t, "one\ntwo\n"))
	opts.LogFile = logPath
	opts.LogLevel = "debug"

	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b := backend.NewNullBackend(20, 5)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() failed: %v", err)
	}
	app.dispatcher = input.NewDispatcher(b, 5, 5*time.Millisecond)

	b.PostKey(backend.KeyDown, 0, backend.ModNone)
	b.PostKey(backend.KeyRune, 'q', backend.ModCtrl)
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	app.Shutdown()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"keyview: ", "Down -> move(Down) at (0, 0)", "C-q -> quit at (0, 1)"} {
		if !strings.Contains(log, want) {
			t.Errorf("expected log to contain %q:\n%s", want, log)
		}
	}
}

func TestSetBackend_InitError(t *testing.T) {
	app, err := New(testOptions(""))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	b := backend.NewNullBackend(80, 24)
	initErr := errors.New("not a tty")
	b.SetInitError(initErr)

	err = app.SetBackend(b)

	var ierr *InitError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *InitError, got %v", err)
	}
	if !errors.Is(err, initErr) {
		t.Errorf("expected wrapped init error, got %v", err)
	}
}

func TestSetBackend_NoWindowSize(t *testing.T) {
	app, err := New(testOptions(""))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	b := backend.NewNullBackend(0, 0)
	if err := app.SetBackend(b); !errors.Is(err, ErrNoWindowSize) {
		t.Errorf("expected ErrNoWindowSize, got %v", err)
	}

	app.Shutdown()
	if b.Initialized() {
		t.Error("expected terminal to be restored")
	}
}

func TestRun_NoBackend(t *testing.T) {
	app, err := New(testOptions(""))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestRun_QuitStopsWithoutAnotherFrame(t *testing.T) {
	app, b := newSession(t, writeFile(t, "a\nb\nc\nd\ne\n"), 40, 10)

	b.PostKey(backend.KeyDown, 0, backend.ModNone)
	b.PostKey(backend.KeyDown, 0, backend.ModNone)
	postQuit(b)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if b.Writes() != 3 {
		t.Errorf("expected 3 frames (one per key before quit), got %d", b.Writes())
	}
	if _, y := app.state.Cursor(); y != 2 {
		t.Errorf("expected cursor y=2, got %d", y)
	}
	if app.Metrics().Snapshot().FrameCount != 3 {
		t.Errorf("expected 3 recorded frames, got %d", app.Metrics().Snapshot().FrameCount)
	}
	if app.Metrics().Snapshot().InputCount != 3 {
		t.Errorf("expected 3 recorded inputs, got %d", app.Metrics().Snapshot().InputCount)
	}
}

func TestRun_ScrollsWithCursor(t *testing.T) {
	app, b := newSession(t, writeFile(t, "l0\nl1\nl2\nl3\nl4\n"), 20, 3)

	for i := 0; i < 4; i++ {
		b.PostKey(backend.KeyDown, 0, backend.ModNone)
	}
	postQuit(b)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if app.state.RowOffset() != 2 {
		t.Errorf("expected row offset 2, got %d", app.state.RowOffset())
	}
	last := b.LastWrite()
	if !strings.Contains(last, "l4") || strings.Contains(last, "l1") {
		t.Errorf("expected last frame to show l2..l4, got %q", last)
	}
	if !strings.HasSuffix(last, ansi.CursorPosition(1, 3)+ansi.ShowCursor) {
		t.Errorf("expected cursor on third screen row, got %q", last)
	}
}

func TestRun_PageDownOnEmptyDocument(t *testing.T) {
	app, b := newSession(t, "", 80, 24)

	b.PostKey(backend.KeyPageDown, 0, backend.ModNone)
	postQuit(b)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if x, y := app.state.Cursor(); x != 0 || y != 0 {
		t.Errorf("expected cursor at origin, got (%d, %d)", x, y)
	}
	if !strings.Contains(b.LastWrite(), "keyview -- version "+Version) {
		t.Errorf("expected welcome banner in frame, got %q", b.LastWrite())
	}
}

func TestRun_WriteError(t *testing.T) {
	app, b := newSession(t, "", 20, 5)

	writeErr := errors.New("broken pipe")
	b.SetWriteError(writeErr)

	err := app.Run(context.Background())
	if !errors.Is(err, writeErr) {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestRun_InputClosed(t *testing.T) {
	app, b := newSession(t, "", 20, 5)
	b.Close()

	err := app.Run(context.Background())
	if !errors.Is(err, input.ErrInputClosed) {
		t.Errorf("expected ErrInputClosed, got %v", err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	app, _ := newSession(t, "", 20, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := app.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

// panicSource is an event source that panics on the first poll.
type panicSource struct{}

func (panicSource) PollEvent(time.Duration) (backend.Event, bool) {
	panic("poll exploded")
}

func TestRun_PanicRestoresTerminal(t *testing.T) {
	app, b := newSession(t, "", 20, 5)
	app.dispatcher = input.NewDispatcher(panicSource{}, 5, time.Millisecond)

	err := app.Run(context.Background())

	var perr *PanicError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if perr.Value != "poll exploded" {
		t.Errorf("unexpected panic value %v", perr.Value)
	}
	if b.Initialized() {
		t.Error("expected terminal to be restored after panic")
	}
	if b.Shutdowns() != 1 {
		t.Errorf("expected 1 backend shutdown, got %d", b.Shutdowns())
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	app, b := newSession(t, "", 20, 5)
	postQuit(b)

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	app.Shutdown()
	app.Shutdown()

	if b.Shutdowns() != 1 {
		t.Errorf("expected 1 backend shutdown, got %d", b.Shutdowns())
	}
	if want := ansi.EraseEntireScreen + ansi.CursorHomePosition; b.LastWrite() != want {
		t.Errorf("expected final write to clear the screen, got %q", b.LastWrite())
	}
	if b.Writes() != 2 {
		t.Errorf("expected one frame and one clear, got %d writes", b.Writes())
	}
}
