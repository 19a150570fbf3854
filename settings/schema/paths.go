package schema

import "strings"

// setByPath writes a value into a nested map, creating tables.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// ensureTable makes sure an (empty) table exists at path.
func ensureTable(data map[string]any, path string) {
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
}

// cloneDefault copies a default value so callers cannot mutate the
// registry's shipped defaults.
func cloneDefault(v any) any {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneDefault(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneDefault(item)
		}
		return out
	default:
		return v
	}
}
