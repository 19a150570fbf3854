package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "LEANLSP_"

// EnvLoader loads settings overrides from environment variables.
//
// Known variables map to their settings paths explicitly; any other
// LEANLSP_-prefixed variable maps generically, so LEANLSP_SETTINGS_X
// becomes settings.x.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> settings path
	environ func() []string
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates an environment loader with the default mapping.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		prefix:  EnvPrefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
		lookup:  os.LookupEnv,
	}
}

// NewEnvLoaderWithMapping creates a loader with a custom mapping.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping maps documented variables to settings paths.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"LEANLSP_COMMAND":             "command",
		"LEANLSP_SELECTOR_EXTENSIONS": "selector.extensions",
		"LEANLSP_DISPLAY_GOALS":       "settings.display_current_goals",
		"LEANLSP_DISPLAY_TYPE":        "settings.display_expected_type",
		"LEANLSP_DISPLAY_NOGOALS":     "settings.display_nogoals",
		"LEANLSP_UNICODE_ENABLED":     "settings.unicode_input_enabled",
		"LEANLSP_UNICODE_LEADER":      "settings.unicode_input_leader",
		"LEANLSP_UNICODE_EAGER":       "settings.unicode_input_eager_replacement",
	}
}

// Load reads matching environment variables into a settings map.
// Empty string values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(out, path, parseEnvValue(val))
		}
	}

	for _, entry := range l.environ() {
		if !strings.HasPrefix(entry, l.prefix) {
			continue
		}
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		setByPath(out, l.envToPath(name), parseEnvValue(value))
	}

	return out, nil
}

// envToPath converts LEANLSP_SETTINGS_DISPLAY_NOGOALS into
// settings.display_nogoals. Only the first segment becomes a table;
// the rest stays a single snake_case key, matching the original
// plugin's setting names.
func (l *EnvLoader) envToPath(name string) string {
	trimmed := strings.ToLower(strings.TrimPrefix(name, l.prefix))
	section, rest, ok := strings.Cut(trimmed, "_")
	if !ok {
		return trimmed
	}
	return section + "." + rest
}

// parseEnvValue converts an environment string to a typed value:
// bool, int, float, JSON array/object, falling back to string.
func parseEnvValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return s
}

// setByPath mirrors layer.SetByPath for the loader's private use.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
