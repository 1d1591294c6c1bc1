package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/keyview/internal/config/loader"
)

// VersionPlaceholder in the banner is replaced by the program version.
const VersionPlaceholder = "{version}"

// Config holds every keyview setting.
type Config struct {
	Viewer  ViewerConfig
	Logging LoggingConfig

	// Unknown lists setting paths that were present in a source but are
	// not recognized. They are ignored.
	Unknown []string
}

// ViewerConfig configures the screen and input loop.
type ViewerConfig struct {
	// Banner is shown centered on an empty document.
	Banner string
	// Filler marks rows past the end of the document.
	Filler rune
	// PollInterval bounds each wait for a key press.
	PollInterval time.Duration
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string
	// File is the log destination. Empty disables logging.
	File string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Viewer: ViewerConfig{
			Banner:       "keyview -- version " + VersionPlaceholder,
			Filler:       '~',
			PollInterval: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// BannerText returns the banner with the version placeholder expanded.
func (c Config) BannerText(version string) string {
	return strings.ReplaceAll(c.Viewer.Banner, VersionPlaceholder, version)
}

// DefaultPath returns the optional per-user config file location,
// $XDG_CONFIG_HOME/keyview/config.toml on Unix. Returns "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keyview", "config.toml")
}

type loadOptions struct {
	path      string
	explicit  bool
	fs        loader.FileSystem
	env       loader.Loader
	overrides map[string]any
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile loads the given config file. Unlike the default path, the
// file must exist.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.path = path
			o.explicit = true
		}
	}
}

// WithFileSystem replaces the OS file system.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment loader. A nil loader disables the
// environment layer.
func WithEnv(l loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = l
	}
}

// WithOverrides applies settings above every other layer, keyed the same
// way as the config file (e.g. {"logging": {"level": "debug"}}).
func WithOverrides(m map[string]any) Option {
	return func(o *loadOptions) {
		o.overrides = m
	}
}

// Load builds the configuration from all layers and validates it.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{
		path: DefaultPath(),
		fs:   loader.DefaultFS(),
		env:  loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if o.path != "" {
		fileMap, err := loadFile(o)
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileMap)
	}

	if o.env != nil {
		envMap, err := o.env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	merged = loader.DeepMerge(merged, o.overrides)

	cfg := Default()
	if err := cfg.Apply(merged); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(o loadOptions) (map[string]any, error) {
	if _, err := o.fs.Stat(o.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if o.explicit {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", o.path, err)
	}

	l, err := loader.ForPath(o.fs, o.path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// Apply sets every recognized setting found in m.
func (c *Config) Apply(m map[string]any) error {
	for section, raw := range m {
		values, ok := raw.(map[string]any)
		if !ok {
			c.Unknown = append(c.Unknown, section)
			continue
		}
		for key, value := range values {
			path := section + "." + key
			known, err := c.set(path, value)
			if err != nil {
				return err
			}
			if !known {
				c.Unknown = append(c.Unknown, path)
			}
		}
	}
	sort.Strings(c.Unknown)
	return nil
}

func (c *Config) set(path string, value any) (bool, error) {
	switch path {
	case "viewer.banner":
		s, err := asString(path, value)
		if err != nil {
			return true, err
		}
		c.Viewer.Banner = s
	case "viewer.filler":
		s, err := asString(path, value)
		if err != nil {
			return true, err
		}
		if utf8.RuneCountInString(s) != 1 {
			return true, invalid(path, value, "must be a single character")
		}
		c.Viewer.Filler, _ = utf8.DecodeRuneInString(s)
	case "viewer.poll_interval":
		d, err := asDuration(path, value)
		if err != nil {
			return true, err
		}
		c.Viewer.PollInterval = d
	case "logging.level":
		s, err := asString(path, value)
		if err != nil {
			return true, err
		}
		c.Logging.Level = strings.ToLower(s)
	case "logging.file":
		s, err := asString(path, value)
		if err != nil {
			return true, err
		}
		c.Logging.File = s
	default:
		return false, nil
	}
	return true, nil
}

func asString(path string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeError(path, "string", value)
	}
	return s, nil
}

// asDuration accepts Go duration strings or integer milliseconds.
func asDuration(path string, value any) (time.Duration, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, &FieldError{Path: path, Value: value, Err: err}
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	default:
		return 0, typeError(path, "duration", value)
	}
}

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if !utf8.ValidString(c.Viewer.Banner) {
		return invalid("viewer.banner", c.Viewer.Banner, "not valid UTF-8")
	}
	for _, r := range c.Viewer.Banner {
		if unicode.IsControl(r) {
			return invalid("viewer.banner", c.Viewer.Banner, "contains control characters")
		}
	}

	if !unicode.IsPrint(c.Viewer.Filler) || runewidth.RuneWidth(c.Viewer.Filler) != 1 {
		return invalid("viewer.filler", string(c.Viewer.Filler), "must be a printable single-width character")
	}

	if c.Viewer.PollInterval <= 0 {
		return invalid("viewer.poll_interval", c.Viewer.PollInterval, "must be positive")
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		return invalid("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}
	return nil
}
