package layer

import "strings"

// Merge recursively merges src into dst and returns dst. Values in src
// override values in dst. Nested tables merge key by key; every other
// type (including slices) is replaced wholesale, so overriding
// `command` replaces the whole argv rather than splicing it.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, sv := range src {
		dv, ok := dst[key]
		if !ok {
			dst[key] = cloneValue(sv)
			continue
		}
		sm, sIsMap := sv.(map[string]any)
		dm, dIsMap := dv.(map[string]any)
		if sIsMap && dIsMap {
			dst[key] = Merge(dm, sm)
		} else {
			dst[key] = cloneValue(sv)
		}
	}
	return dst
}

// GetByPath retrieves a value from a nested map using a dot-separated
// path such as "selector.extensions".
func GetByPath(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	cur := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// SetByPath sets a value in a nested map, creating intermediate tables
// as needed. Returns false if an intermediate key already holds a
// non-table value.
func SetByPath(data map[string]any, path string, value any) bool {
	if data == nil || path == "" {
		return false
	}
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts[:len(parts)-1] {
		next, exists := cur[part]
		if !exists {
			m := make(map[string]any)
			cur[part] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return false
		}
		cur = m
	}
	cur[parts[len(parts)-1]] = value
	return true
}

// DeleteByPath removes a value from a nested map. Returns false if the
// path does not exist. Empty intermediate tables are left in place.
func DeleteByPath(data map[string]any, path string) bool {
	if data == nil || path == "" {
		return false
	}
	parts := strings.Split(path, ".")
	cur := data
	for _, part := range parts[:len(parts)-1] {
		m, ok := cur[part].(map[string]any)
		if !ok {
			return false
		}
		cur = m
	}
	last := parts[len(parts)-1]
	if _, ok := cur[last]; !ok {
		return false
	}
	delete(cur, last)
	return true
}

// cloneMap creates a deep copy of a nested settings map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

// cloneSlice creates a deep copy of a slice value.
func cloneSlice(src []any) []any {
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		return cloneSlice(val)
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
