// Package layer provides priority-ordered configuration layers for the
// Lean server settings document.
//
// A layer holds one source of settings (shipped defaults, a user file,
// environment variables, ...). Layers merge in priority order: higher
// priority values override lower ones, nested tables merge recursively.
package layer

import (
	"time"
)

// Source indicates where a settings layer came from.
type Source uint8

const (
	// SourceBuiltin holds the shipped default settings.
	SourceBuiltin Source = iota
	// SourceUser holds the user's settings file.
	SourceUser
	// SourceWorkspace holds per-workspace settings.
	SourceWorkspace
	// SourceEnv holds environment variable overrides.
	SourceEnv
	// SourceSession holds in-memory overrides for the current session.
	SourceSession
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceWorkspace:
		return "workspace"
	case SourceEnv:
		return "environment"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// Standard priorities. Higher values override lower values when merging.
const (
	PriorityBuiltin   = 0
	PriorityUser      = 100
	PriorityWorkspace = 200
	PriorityEnv       = 300
	PrioritySession   = 400
)

// Priority returns the standard merge priority for a source.
func (s Source) Priority() int {
	switch s {
	case SourceBuiltin:
		return PriorityBuiltin
	case SourceUser:
		return PriorityUser
	case SourceWorkspace:
		return PriorityWorkspace
	case SourceEnv:
		return PriorityEnv
	case SourceSession:
		return PrioritySession
	default:
		return PriorityBuiltin
	}
}

// Layer is a single settings source.
type Layer struct {
	// Name identifies the layer ("defaults", "user", ...).
	Name string

	// Source indicates where the layer was loaded from.
	Source Source

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Path is the file the layer was loaded from, if any.
	Path string

	// Data holds the settings values as a nested map.
	Data map[string]any

	// ModTime is when the source was last modified.
	ModTime time.Time

	// ReadOnly prevents Set/Delete on this layer. The builtin defaults
	// layer is always read-only.
	ReadOnly bool
}

// New creates an empty layer for a source at its standard priority.
func New(source Source) *Layer {
	return &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: source.Priority(),
		Data:     make(map[string]any),
		ModTime:  time.Now(),
	}
}

// NewWithData creates a layer populated with data.
func NewWithData(source Source, data map[string]any) *Layer {
	l := New(source)
	if data != nil {
		l.Data = data
	}
	return l
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}

// Get retrieves a value by dotted path.
func (l *Layer) Get(path string) (any, bool) {
	return GetByPath(l.Data, path)
}

// Set stores a value by dotted path. Returns false if the layer is
// read-only or an intermediate key holds a non-table value.
func (l *Layer) Set(path string, value any) bool {
	if l.ReadOnly {
		return false
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	if !SetByPath(l.Data, path, value) {
		return false
	}
	l.ModTime = time.Now()
	return true
}

// Delete removes a value by dotted path. Returns false if the layer is
// read-only or the path does not exist.
func (l *Layer) Delete(path string) bool {
	if l.ReadOnly {
		return false
	}
	if !DeleteByPath(l.Data, path) {
		return false
	}
	l.ModTime = time.Now()
	return true
}
