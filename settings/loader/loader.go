// Package loader reads the Lean server settings document from its
// supported sources: TOML (primary), JSON, YAML, and environment
// variables. Loaders return nested maps ready for layer merging.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads a settings document from some source.
type Loader interface {
	// Load returns the settings as a nested map. A missing source
	// returns nil, nil: absence of a settings file is not an error.
	Load() (map[string]any, error)
}

// FileLoader is a Loader that reads from a file path.
type FileLoader interface {
	Loader
	// LoadFrom reads settings from a specific path.
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader is a Loader that reads from an io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads settings from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem abstracts file access so tests can use in-memory files.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem { return OSFS{} }

// ForPath returns a file loader matching the path's extension:
// .toml (default), .json, or .yaml/.yml.
func ForPath(path string) FileLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONLoader(path)
	case ".yaml", ".yml":
		return NewYAMLLoader(path)
	default:
		return NewTOMLLoader(path)
	}
}
