package loader

import (
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix of keyview environment variables.
const DefaultEnvPrefix = "KEYVIEW_"

// EnvLoader loads configuration from environment variables.
//
// Values are kept as strings; the config package converts them when it
// applies the merged map.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYVIEW_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYVIEW_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping(prefix))
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the short-form variables.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "BANNER":        "viewer.banner",
		prefix + "FILLER":        "viewer.filler",
		prefix + "POLL_INTERVAL": "viewer.poll_interval",
		prefix + "LOG_LEVEL":     "logging.level",
		prefix + "LOG_FILE":      "logging.file",
	}
}

// Load reads environment variables and returns a configuration map.
// Mapped variables are applied first; any other prefixed variable is
// read as PREFIX_SECTION_KEY. Empty values are kept, not treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	env := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		env[name] = value
	}

	for name, value := range env {
		if _, ok := l.mapping[name]; ok {
			continue
		}
		if path := l.envToPath(name); path != "" {
			setByPath(config, path, value)
		}
	}

	// Short forms win over the long spelling of the same setting
	for name, path := range l.mapping {
		if value, ok := env[name]; ok {
			setByPath(config, path, value)
		}
	}

	return config, nil
}

// envToPath converts KEYVIEW_VIEWER_POLL_INTERVAL to viewer.poll_interval.
// Returns "" if the name has no key part.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))

	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
