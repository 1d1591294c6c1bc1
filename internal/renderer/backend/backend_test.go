package backend

import (
	"errors"
	"testing"
	"time"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if !b.Initialized() {
		t.Error("expected backend to be initialized")
	}
}

func TestNullBackendInitError(t *testing.T) {
	b := NewNullBackend(80, 24)
	want := errors.New("no tty")
	b.SetInitError(want)

	if err := b.Init(); !errors.Is(err, want) {
		t.Errorf("expected init error %v, got %v", want, err)
	}
}

func TestNullBackendWrite(t *testing.T) {
	b := NewNullBackend(80, 24)

	if _, err := b.Write([]byte("early")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized before Init, got %v", err)
	}

	b.Init()
	b.Write([]byte("one"))
	b.Write([]byte("two"))

	if b.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", b.Writes())
	}
	if b.Output() != "onetwo" {
		t.Errorf("expected output %q, got %q", "onetwo", b.Output())
	}
	if b.LastWrite() != "two" {
		t.Errorf("expected last write %q, got %q", "two", b.LastWrite())
	}
}

func TestNullBackendWriteError(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()
	b.SetWriteError(errors.New("broken pipe"))

	if _, err := b.Write([]byte("x")); err == nil {
		t.Error("expected write error")
	}
}

func TestNullBackendPollEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.PostKey(KeyUp, 0, ModNone)

	ev, ok := b.PollEvent(time.Second)
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Type != EventKey || ev.Key != KeyUp {
		t.Errorf("expected Up key event, got %+v", ev)
	}
}

func TestNullBackendPollTimeout(t *testing.T) {
	b := NewNullBackend(80, 24)

	start := time.Now()
	_, ok := b.PollEvent(10 * time.Millisecond)
	if ok {
		t.Error("expected timeout with no events")
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Error("poll returned before the timeout elapsed")
	}
}

func TestNullBackendClose(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Close()
	b.Close()

	ev, ok := b.PollEvent(time.Second)
	if !ok || ev.Type != EventClosed {
		t.Errorf("expected EventClosed, got %+v (ok=%v)", ev, ok)
	}
}

func TestNullBackendShutdown(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()
	b.Shutdown()
	b.Shutdown()

	if b.Initialized() {
		t.Error("expected backend to be shut down")
	}
	if b.Shutdowns() != 2 {
		t.Errorf("expected 2 shutdown calls recorded, got %d", b.Shutdowns())
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModAlt
	if !m.Has(ModCtrl) || !m.Has(ModAlt) {
		t.Error("expected Ctrl and Alt to be set")
	}
	if m.Has(ModShift) {
		t.Error("expected Shift to be unset")
	}
}
