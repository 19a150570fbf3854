package schema

import (
	"fmt"
	"strings"
)

// Code categorizes a validation failure.
type Code uint8

const (
	// CodeUnknownSetting indicates an unrecognized setting path.
	CodeUnknownSetting Code = iota
	// CodeTypeMismatch indicates the value type is wrong.
	CodeTypeMismatch
	// CodeInvalidEnum indicates the value is not in the allowed set.
	CodeInvalidEnum
	// CodePatternMismatch indicates the value fails its pattern.
	CodePatternMismatch
)

// String returns a stable name for the code.
func (c Code) String() string {
	switch c {
	case CodeUnknownSetting:
		return "unknown_setting"
	case CodeTypeMismatch:
		return "type_mismatch"
	case CodeInvalidEnum:
		return "invalid_enum"
	case CodePatternMismatch:
		return "pattern_mismatch"
	default:
		return "unknown"
	}
}

// ValidationError describes one invalid setting value.
type ValidationError struct {
	// Path is the setting that failed.
	Path string
	// Message describes the failure.
	Message string
	// Value is the offending value.
	Value any
	// Code categorizes the failure.
	Code Code
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// ValidationErrors aggregates failures from one validation pass.
type ValidationErrors struct {
	errs []*ValidationError
}

// Add records an error if it is a non-nil validation failure.
func (v *ValidationErrors) Add(err error) {
	if err == nil {
		return
	}
	if verr, ok := err.(*ValidationError); ok {
		v.errs = append(v.errs, verr)
		return
	}
	v.errs = append(v.errs, &ValidationError{Message: err.Error()})
}

// Len returns how many errors have been collected.
func (v *ValidationErrors) Len() int { return len(v.errs) }

// All returns the collected errors.
func (v *ValidationErrors) All() []*ValidationError { return v.errs }

// AsError returns the aggregate as an error, or nil when empty.
func (v *ValidationErrors) AsError() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.errs) == 1 {
		return v.errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid settings:", len(v.errs))
	for _, e := range v.errs {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}
