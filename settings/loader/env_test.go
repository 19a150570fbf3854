package loader

import (
	"reflect"
	"testing"
)

// fakeEnv wires an EnvLoader to a fixed environment.
func fakeEnv(vars map[string]string) *EnvLoader {
	l := NewEnvLoader()
	l.environ = func() []string {
		out := make([]string, 0, len(vars))
		for k, v := range vars {
			out = append(out, k+"="+v)
		}
		return out
	}
	l.lookup = func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
	return l
}

func TestEnvLoaderMappedVariables(t *testing.T) {
	l := fakeEnv(map[string]string{
		"LEANLSP_COMMAND":         `["lean", "--server"]`,
		"LEANLSP_DISPLAY_NOGOALS": "true",
		"LEANLSP_UNICODE_LEADER":  `\`,
	})

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !reflect.DeepEqual(got["command"], []any{"lean", "--server"}) {
		t.Errorf("command = %v", got["command"])
	}
	settings := got["settings"].(map[string]any)
	if settings["display_nogoals"] != true {
		t.Errorf("display_nogoals = %v", settings["display_nogoals"])
	}
	if settings["unicode_input_leader"] != `\` {
		t.Errorf("unicode_input_leader = %v", settings["unicode_input_leader"])
	}
}

func TestEnvLoaderGenericPrefix(t *testing.T) {
	l := fakeEnv(map[string]string{
		"LEANLSP_SETTINGS_DISPLAY_MDPOPUP": "false",
		"UNRELATED_VAR":                    "ignored",
	})

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	settings, ok := got["settings"].(map[string]any)
	if !ok {
		t.Fatalf("settings missing: %v", got)
	}
	if settings["display_mdpopup"] != false {
		t.Errorf("display_mdpopup = %v", settings["display_mdpopup"])
	}
	if _, ok := got["unrelated"]; ok {
		t.Error("unprefixed variable leaked into settings")
	}
}

func TestEnvLoaderEmpty(t *testing.T) {
	got, err := fakeEnv(nil).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestParseEnvValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"2.5", 2.5},
		{`["a", "b"]`, []any{"a", "b"}},
		{"plain", "plain"},
		{"[not json", "[not json"},
	}
	for _, tt := range tests {
		if got := parseEnvValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseEnvValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
