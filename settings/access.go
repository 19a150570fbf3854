package settings

import "fmt"

// GetString returns a string setting.
func (m *Manager) GetString(path string) (string, error) {
	v, ok := m.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: fmt.Sprintf("%T", v)}
	}
	return s, nil
}

// GetBool returns a boolean setting.
func (m *Manager) GetBool(path string) (bool, error) {
	v, ok := m.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: fmt.Sprintf("%T", v)}
	}
	return b, nil
}

// GetStringSlice returns a string list setting. Lists arrive as
// []string from defaults and []any from the file loaders; both are
// accepted.
func (m *Manager) GetStringSlice(path string) ([]string, error) {
	v, ok := m.Get(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "string list", Actual: fmt.Sprintf("[]any with %T", item)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &TypeError{Path: path, Expected: "string list", Actual: fmt.Sprintf("%T", v)}
	}
}

// GetMap returns a table setting as a nested map.
func (m *Manager) GetMap(path string) (map[string]any, error) {
	v, ok := m.Get(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "table", Actual: fmt.Sprintf("%T", v)}
	}
	return t, nil
}
