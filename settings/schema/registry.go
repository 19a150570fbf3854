package schema

import "sort"

// Definitions returns the full set of recognized settings, sorted by
// path. Defaults here are the shipped values the host sees before any
// user override.
func Definitions() []*Setting {
	defs := []*Setting{
		{
			Path:        "command",
			Type:        TypeStringList,
			Default:     []string{"lake", "serve"},
			Description: "Executable and arguments used to launch the Lean language server. The executable must be resolvable on PATH.",
		},
		{
			Path:        "selector",
			Type:        TypeTable,
			Description: "Document selector deciding which files activate the Lean server.",
		},
		{
			Path:        "selector.extensions",
			Type:        TypeStringList,
			Default:     []string{".lean"},
			Description: "File extensions routed to the Lean server.",
		},
		{
			Path:        "selector.languageIds",
			Type:        TypeStringList,
			Default:     []string{"lean4", "lean"},
			Description: "Language identifiers routed to the Lean server.",
		},
		{
			Path:        "initializationOptions",
			Type:        TypeTable,
			Opaque:      true,
			Description: "Options forwarded verbatim to the server's initialize handshake.",
		},
		{
			Path:        "settings",
			Type:        TypeTable,
			Description: "Server and plugin settings merged into the session configuration.",
		},
		{
			Path:        "settings.display_current_goals",
			Type:        TypeBool,
			Default:     true,
			Description: "Request and show the proof goals at the cursor.",
		},
		{
			Path:        "settings.display_expected_type",
			Type:        TypeBool,
			Default:     true,
			Description: "Request and show the expected type at the cursor.",
		},
		{
			Path:        "settings.display_mdpopup",
			Type:        TypeBool,
			Default:     true,
			Description: "Render the infoview as a markdown popup instead of a plain panel.",
		},
		{
			Path:        "settings.display_nogoals",
			Type:        TypeBool,
			Default:     false,
			Description: "Show a notice when the cursor position has no goals.",
		},
		{
			Path:        "settings.display_syntaxfile",
			Type:        TypeString,
			Default:     "Packages/Text/Plain text.tmLanguage",
			Description: "Syntax definition applied to the plain infoview panel.",
		},
		{
			Path:        "settings.unicode_input_enabled",
			Type:        TypeBool,
			Default:     true,
			Description: "Enable unicode abbreviation input in Lean files.",
		},
		{
			Path:        "settings.unicode_input_leader",
			Type:        TypeString,
			Default:     `\`,
			Pattern:     `.+`,
			Description: "Character sequence that starts an abbreviation.",
		},
		{
			Path:        "settings.unicode_input_ender",
			Type:        TypeString,
			Default:     "\t",
			Pattern:     `.+`,
			Description: "Character sequence that commits an abbreviation.",
		},
		{
			Path:        "settings.unicode_input_eager_replacement",
			Type:        TypeBool,
			Default:     false,
			Description: "Replace an abbreviation as soon as it is unambiguous.",
		},
		{
			Path:        "settings.unicode_input_custom_translations",
			Type:        TypeTable,
			Opaque:      true,
			Description: "Extra abbreviation-to-unicode translations merged over the bundled table.",
		},
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs
}

// Registry indexes settings by path for validation and lookup.
type Registry struct {
	byPath map[string]*Setting
	opaque []string // paths whose subtrees are never validated
}

// NewRegistry builds a registry from the standard definitions.
func NewRegistry() *Registry {
	return NewRegistryWith(Definitions())
}

// NewRegistryWith builds a registry from explicit definitions.
func NewRegistryWith(defs []*Setting) *Registry {
	r := &Registry{byPath: make(map[string]*Setting, len(defs))}
	for _, d := range defs {
		r.byPath[d.Path] = d
		if d.Opaque {
			r.opaque = append(r.opaque, d.Path)
		}
	}
	return r
}

// Lookup returns the setting definition for a path, or nil.
func (r *Registry) Lookup(path string) *Setting {
	return r.byPath[path]
}

// Settings returns all definitions sorted by path.
func (r *Registry) Settings() []*Setting {
	out := make([]*Setting, 0, len(r.byPath))
	for _, d := range r.byPath {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Defaults assembles the shipped default document from the
// definitions' default values.
func (r *Registry) Defaults() map[string]any {
	out := make(map[string]any)
	for _, d := range r.Settings() {
		if d.Type == TypeTable {
			ensureTable(out, d.Path)
			continue
		}
		if d.Default == nil {
			continue
		}
		setByPath(out, d.Path, cloneDefault(d.Default))
	}
	return out
}

// IsOpaque reports whether path lives inside an opaque subtree.
func (r *Registry) IsOpaque(path string) bool {
	for _, prefix := range r.opaque {
		if path == prefix || len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '.' {
			return true
		}
	}
	return false
}
