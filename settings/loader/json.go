package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONLoader loads settings from a JSON file. JSON mirrors the
// sublime-settings shape of the original Lean plugin.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{fs: DefaultFS(), path: path}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fsys FileSystem, path string) *JSONLoader {
	return &JSONLoader{fs: fsys, path: path}
}

// Load reads settings from the configured path.
func (l *JSONLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads settings from a specific path.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads settings from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(path string, data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &ParseError{Path: path, Format: "json", Message: err.Error(), Err: err}
	}
	return out, nil
}
