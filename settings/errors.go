package settings

import (
	"errors"
	"fmt"
)

// Errors returned by settings operations.
var (
	// ErrNotLoaded indicates Load has not been called yet.
	ErrNotLoaded = errors.New("settings not loaded")

	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidPath indicates a malformed or blocked setting path.
	ErrInvalidPath = errors.New("invalid setting path")
)

// TypeError is returned when a typed accessor finds the wrong type.
type TypeError struct {
	// Path is the setting path.
	Path string
	// Expected is the expected type name.
	Expected string
	// Actual is the actual type name.
	Actual string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches TypeError against ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
