package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	reg := NewRegistry()
	v := NewValidator(reg).WithStrict(true)

	if err := v.Validate(reg.Defaults()); err != nil {
		t.Errorf("shipped defaults should validate, got: %v", err)
	}
}

func TestDefaultsContent(t *testing.T) {
	defaults := NewRegistry().Defaults()

	if !reflect.DeepEqual(defaults["command"], []string{"lake", "serve"}) {
		t.Errorf("command = %v", defaults["command"])
	}
	sel := defaults["selector"].(map[string]any)
	if !reflect.DeepEqual(sel["extensions"], []string{".lean"}) {
		t.Errorf("extensions = %v", sel["extensions"])
	}
	settings := defaults["settings"].(map[string]any)
	if settings["display_current_goals"] != true {
		t.Error("display_current_goals default should be true")
	}
	if settings["display_nogoals"] != false {
		t.Error("display_nogoals default should be false")
	}
	if settings["unicode_input_leader"] != `\` {
		t.Errorf("unicode_input_leader = %q", settings["unicode_input_leader"])
	}
	if _, ok := defaults["initializationOptions"].(map[string]any); !ok {
		t.Error("initializationOptions table missing from defaults")
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	reg := NewRegistry()
	first := reg.Defaults()
	first["command"].([]string)[0] = "mutated"

	second := reg.Defaults()
	if second["command"].([]string)[0] != "lake" {
		t.Error("Defaults shares state between calls")
	}
}

func TestSettingValidate(t *testing.T) {
	tests := []struct {
		name    string
		setting Setting
		value   any
		code    Code
		wantErr bool
	}{
		{
			name:    "bool ok",
			setting: Setting{Path: "settings.display_nogoals", Type: TypeBool},
			value:   true,
		},
		{
			name:    "bool type mismatch",
			setting: Setting{Path: "settings.display_nogoals", Type: TypeBool},
			value:   "yes",
			code:    CodeTypeMismatch,
			wantErr: true,
		},
		{
			name:    "string list from toml",
			setting: Setting{Path: "command", Type: TypeStringList},
			value:   []any{"lake", "serve"},
		},
		{
			name:    "string list rejects mixed",
			setting: Setting{Path: "command", Type: TypeStringList},
			value:   []any{"lake", 1},
			code:    CodeTypeMismatch,
			wantErr: true,
		},
		{
			name:    "pattern mismatch",
			setting: Setting{Path: "settings.unicode_input_leader", Type: TypeString, Pattern: `.+`},
			value:   "",
			code:    CodePatternMismatch,
			wantErr: true,
		},
		{
			name:    "enum mismatch",
			setting: Setting{Path: "x", Type: TypeString, Enum: []any{"a", "b"}},
			value:   "c",
			code:    CodeInvalidEnum,
			wantErr: true,
		},
		{
			name:    "json float as int",
			setting: Setting{Path: "x", Type: TypeInt},
			value:   float64(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setting.Validate(tt.value)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type %T", err)
			}
			if verr.Code != tt.code {
				t.Errorf("code = %s, want %s", verr.Code, tt.code)
			}
		})
	}
}

func TestValidatorOpaqueSubtrees(t *testing.T) {
	v := NewValidator(NewRegistry()).WithStrict(true)

	doc := map[string]any{
		"initializationOptions": map[string]any{
			"anything": map[string]any{"nested": 42},
		},
		"settings": map[string]any{
			"display_nogoals":  true,
			"undocumented_key": "forwarded as-is",
			"unicode_input_custom_translations": map[string]any{
				"qed": "∎",
			},
		},
	}
	if err := v.Validate(doc); err != nil {
		t.Errorf("opaque content should pass, got: %v", err)
	}
}

func TestValidatorStrictUnknownKey(t *testing.T) {
	v := NewValidator(NewRegistry()).WithStrict(true)

	err := v.Validate(map[string]any{"comand": []any{"lake"}})
	if err == nil {
		t.Fatal("strict validation should reject a misspelled key")
	}
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type %T", err)
	}
	if verrs.All()[0].Code != CodeUnknownSetting {
		t.Errorf("code = %s", verrs.All()[0].Code)
	}

	// Non-strict mode forwards the same document.
	if err := NewValidator(NewRegistry()).Validate(map[string]any{"comand": []any{"lake"}}); err != nil {
		t.Errorf("non-strict validation should pass, got: %v", err)
	}
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	v := NewValidator(NewRegistry())

	err := v.Validate(map[string]any{
		"command": "not a list",
		"settings": map[string]any{
			"display_nogoals":      "not a bool",
			"unicode_input_leader": "",
		},
	})
	if err == nil {
		t.Fatal("expected errors")
	}
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type %T", err)
	}
	if verrs.Len() != 3 {
		t.Errorf("collected %d errors, want 3: %v", verrs.Len(), err)
	}
}

func TestValidatePath(t *testing.T) {
	v := NewValidator(NewRegistry()).WithStrict(true)

	if err := v.ValidatePath("settings.display_mdpopup", false); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := v.ValidatePath("settings.display_mdpopup", 3); err == nil {
		t.Error("type mismatch accepted")
	}
	if err := v.ValidatePath("initializationOptions.custom", "anything"); err != nil {
		t.Errorf("opaque path rejected: %v", err)
	}
	if err := v.ValidatePath("bogus.path", 1); err == nil {
		t.Error("unknown path accepted in strict mode")
	}
}

func TestRegistryIsOpaque(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		path string
		want bool
	}{
		{"initializationOptions", true},
		{"initializationOptions.nested.deep", true},
		{"initializationOptionsX", false},
		{"settings.unicode_input_custom_translations.qed", true},
		{"settings.display_nogoals", false},
		{"command", false},
	}
	for _, tt := range tests {
		if got := reg.IsOpaque(tt.path); got != tt.want {
			t.Errorf("IsOpaque(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
