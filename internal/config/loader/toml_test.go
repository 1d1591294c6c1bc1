package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[viewer]
banner = "hello"
filler = "."
poll_interval = "250ms"

[logging]
level = "debug"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	viewer, ok := config["viewer"].(map[string]any)
	if !ok {
		t.Fatal("expected viewer to be a map")
	}
	if viewer["banner"] != "hello" {
		t.Errorf("banner = %v, want hello", viewer["banner"])
	}
	if viewer["poll_interval"] != "250ms" {
		t.Errorf("poll_interval = %v, want 250ms", viewer["poll_interval"])
	}

	logging, ok := config["logging"].(map[string]any)
	if !ok {
		t.Fatal("expected logging to be a map")
	}
	if logging["level"] != "debug" {
		t.Errorf("level = %v, want debug", logging["level"])
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[viewer]\nbanner = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("expected path /bad.toml, got %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("expected a line number")
	}
	if !strings.Contains(perr.Error(), "/bad.toml") {
		t.Errorf("error should mention the file: %v", perr)
	}
}

func TestTOMLLoader_LoadFrom(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/other.toml", `[logging]
file = "/tmp/keyview.log"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/unused.toml").LoadFrom("/other.toml")
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	logging := config["logging"].(map[string]any)
	if logging["file"] != "/tmp/keyview.log" {
		t.Errorf("file = %v, want /tmp/keyview.log", logging["file"])
	}
}
