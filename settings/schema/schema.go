// Package schema defines the recognized keys of the Lean server
// settings document and validates documents against them.
//
// The schema is fixed: it describes the four top-level options the
// host contract names (command, selector, initializationOptions,
// settings) plus the individual settings the original plugin
// documents. The initializationOptions table and unknown keys under
// settings are opaque: they are forwarded to the server verbatim and
// never rejected.
package schema

import (
	"fmt"
	"regexp"
)

// Type is a setting's expected data type.
type Type uint8

const (
	// TypeString is a single string value.
	TypeString Type = iota
	// TypeBool is a boolean value.
	TypeBool
	// TypeInt is an integer value.
	TypeInt
	// TypeFloat is a floating point value.
	TypeFloat
	// TypeStringList is a list of strings.
	TypeStringList
	// TypeTable is a nested key/value table.
	TypeTable
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeStringList:
		return "string list"
	case TypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Setting describes one recognized settings key.
type Setting struct {
	// Path is the dotted path ("settings.display_nogoals").
	Path string

	// Type is the expected value type.
	Type Type

	// Default is the shipped default value.
	Default any

	// Description documents the setting for the host's settings UI.
	Description string

	// Enum lists allowed values, when restricted.
	Enum []any

	// Pattern is a regex the value must match (strings only).
	Pattern string

	// Opaque marks a table whose contents are forwarded verbatim and
	// never validated.
	Opaque bool

	compiledPattern *regexp.Regexp
}

// Validate checks a value against this setting's constraints.
func (s *Setting) Validate(value any) error {
	if err := s.checkType(value); err != nil {
		return err
	}
	if len(s.Enum) > 0 && !enumContains(s.Enum, value) {
		return &ValidationError{
			Path:    s.Path,
			Message: fmt.Sprintf("value must be one of %v", s.Enum),
			Value:   value,
			Code:    CodeInvalidEnum,
		}
	}
	if s.Type == TypeString && s.Pattern != "" {
		if err := s.checkPattern(value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Setting) checkType(value any) error {
	ok := true
	switch s.Type {
	case TypeString:
		_, ok = value.(string)
	case TypeBool:
		_, ok = value.(bool)
	case TypeInt:
		ok = isInt(value)
	case TypeFloat:
		ok = isFloat(value) || isInt(value)
	case TypeStringList:
		ok = isStringList(value)
	case TypeTable:
		_, ok = value.(map[string]any)
	}
	if !ok {
		return &ValidationError{
			Path:    s.Path,
			Message: fmt.Sprintf("expected %s, got %T", s.Type, value),
			Value:   value,
			Code:    CodeTypeMismatch,
		}
	}
	return nil
}

func (s *Setting) checkPattern(value any) error {
	if s.compiledPattern == nil {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("setting %s has invalid pattern: %w", s.Path, err)
		}
		s.compiledPattern = re
	}
	str := value.(string)
	if !s.compiledPattern.MatchString(str) {
		return &ValidationError{
			Path:    s.Path,
			Message: fmt.Sprintf("value must match pattern %q", s.Pattern),
			Value:   value,
			Code:    CodePatternMismatch,
		}
	}
	return nil
}

// isInt accepts the integer types the loaders produce.
func isInt(v any) bool {
	switch v.(type) {
	case int, int32, int64, uint, uint32, uint64:
		return true
	case float64:
		// JSON decodes all numbers to float64.
		f := v.(float64)
		return f == float64(int64(f))
	default:
		return false
	}
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// isStringList accepts []string and []any holding only strings.
func isStringList(v any) bool {
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
	}
	return false
}
