package leanlsp

import (
	"path/filepath"
	"strings"
)

// Selector decides which documents activate the Lean server. A
// document matches if its extension or its language id is listed.
type Selector struct {
	// Extensions are file extensions including the dot (".lean").
	Extensions []string

	// LanguageIDs are LSP language identifiers ("lean4").
	LanguageIDs []string
}

// DefaultSelector returns the shipped Lean selector.
func DefaultSelector() Selector {
	return Selector{
		Extensions:  []string{".lean"},
		LanguageIDs: []string{"lean4", "lean"},
	}
}

// Matches reports whether a file path activates the Lean server.
// Extension comparison is case-insensitive.
func (s Selector) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range s.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// MatchesLanguage reports whether a language id activates the server.
func (s Selector) MatchesLanguage(id string) bool {
	for _, l := range s.LanguageIDs {
		if l == id {
			return true
		}
	}
	return false
}

// Empty reports whether the selector matches nothing.
func (s Selector) Empty() bool {
	return len(s.Extensions) == 0 && len(s.LanguageIDs) == 0
}

// clone returns a copy that shares no slices with the original.
func (s Selector) clone() Selector {
	out := Selector{}
	if s.Extensions != nil {
		out.Extensions = make([]string, len(s.Extensions))
		copy(out.Extensions, s.Extensions)
	}
	if s.LanguageIDs != nil {
		out.LanguageIDs = make([]string, len(s.LanguageIDs))
		copy(out.LanguageIDs, s.LanguageIDs)
	}
	return out
}
