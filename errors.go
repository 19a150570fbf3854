package leanlsp

import (
	"errors"
	"fmt"
)

// Errors returned by descriptor and provider operations.
var (
	// ErrNoCommand indicates the descriptor has an empty command line.
	ErrNoCommand = errors.New("descriptor has no command")

	// ErrEmptySelector indicates the selector matches no documents.
	ErrEmptySelector = errors.New("descriptor selector matches nothing")

	// ErrInvalidDocument indicates the settings document cannot be
	// converted into a descriptor.
	ErrInvalidDocument = errors.New("invalid settings document")

	// ErrProviderClosed indicates the provider has been closed.
	ErrProviderClosed = errors.New("provider closed")

	// ErrAlreadyRegistered indicates the provider name is taken.
	ErrAlreadyRegistered = errors.New("server provider already registered")
)

// ProviderError wraps a failure to produce or register a descriptor.
type ProviderError struct {
	// Provider is the provider name.
	Provider string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("server provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error { return e.Err }
