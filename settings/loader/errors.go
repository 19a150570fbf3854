package loader

import "fmt"

// ParseError describes a settings file that failed to parse.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Format is the document format ("toml", "json", "yaml").
	Format string
	// Line and Column locate the error when the parser reports them.
	Line   int
	Column int
	// Message describes the parse failure.
	Message string
	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parsing %s settings %s at line %d, column %d: %s",
			e.Format, e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s settings %s at line %d: %s",
			e.Format, e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parsing %s settings %s: %s", e.Format, e.Path, e.Message)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error { return e.Err }
