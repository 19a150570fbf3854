package schema

import "strings"

// Validator checks settings documents against the registry.
type Validator struct {
	registry *Registry

	strict    bool // unknown non-forwarded keys are errors
	maxErrors int  // 0 means unlimited
}

// NewValidator creates a validator over the given registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{registry: registry, maxErrors: 50}
}

// WithStrict makes unknown keys outside forwarded subtrees errors.
func (v *Validator) WithStrict(strict bool) *Validator {
	v.strict = strict
	return v
}

// WithMaxErrors caps how many errors are collected.
func (v *Validator) WithMaxErrors(n int) *Validator {
	v.maxErrors = n
	return v
}

// Validate checks a full settings document. All errors are collected
// up to the configured cap; returns nil when the document is valid.
func (v *Validator) Validate(doc map[string]any) error {
	errs := &ValidationErrors{}
	v.walk("", doc, errs)
	return errs.AsError()
}

// ValidatePath checks a single value at a dotted path.
func (v *Validator) ValidatePath(path string, value any) error {
	if v.forwarded(path) {
		return nil
	}
	def := v.registry.Lookup(path)
	if def == nil {
		if v.strict {
			return &ValidationError{Path: path, Message: "unknown setting", Value: value, Code: CodeUnknownSetting}
		}
		return nil
	}
	return def.Validate(value)
}

func (v *Validator) walk(prefix string, value any, errs *ValidationErrors) {
	if v.maxErrors > 0 && errs.Len() >= v.maxErrors {
		return
	}

	table, isTable := value.(map[string]any)

	if prefix != "" {
		if v.registry.IsOpaque(prefix) {
			// Forwarded verbatim; only the container type is checked.
			if def := v.registry.Lookup(prefix); def != nil {
				errs.Add(def.Validate(value))
			}
			return
		}
		def := v.registry.Lookup(prefix)
		switch {
		case def != nil:
			if err := def.Validate(value); err != nil {
				errs.Add(err)
				return
			}
		case v.forwarded(prefix):
			// Unknown key inside a forwarded table: accepted as-is.
			return
		case v.strict:
			errs.Add(&ValidationError{Path: prefix, Message: "unknown setting", Value: value, Code: CodeUnknownSetting})
			return
		}
		if def != nil && def.Type != TypeTable {
			return
		}
	}

	if !isTable {
		return
	}
	for key, child := range table {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		v.walk(path, child, errs)
	}
}

// forwarded reports whether a path sits inside a table whose unknown
// contents are passed to the server untouched. That covers the opaque
// tables and any undocumented key under settings.
func (v *Validator) forwarded(path string) bool {
	if v.registry.IsOpaque(path) {
		return true
	}
	if strings.HasPrefix(path, "settings.") && v.registry.Lookup(path) == nil {
		return true
	}
	return false
}
