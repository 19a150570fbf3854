package layer

import (
	"sort"
	"sync"
)

// Manager holds the active settings layers and provides merged access.
// The merged view is cached and rebuilt lazily after any change.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // sorted by priority, ascending
	merged map[string]any
	dirty  bool
}

// NewManager creates an empty layer manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Add inserts a layer, keeping layers sorted by priority. Adding a
// second layer for the same source replaces the first.
func (m *Manager) Add(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.layers {
		if existing.Source == l.Source && existing.Name == l.Name {
			m.layers[i] = l
			m.dirty = true
			return
		}
	}
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// Remove deletes a layer by name. Returns true if it was present.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Layer returns the layer with the given name, or nil.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// BySource returns the first layer with the given source, or nil.
func (m *Manager) BySource(source Source) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.layers {
		if l.Source == source {
			return l
		}
	}
	return nil
}

// Layers returns the layers in merge order (lowest priority first).
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Len returns the number of layers.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers)
}

// Invalidate marks the merged cache stale. Callers that mutate a
// layer's Data directly must invalidate before the next read.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}

// Merged returns a deep copy of the merged settings document, applying
// layers lowest priority first so higher layers win.
func (m *Manager) Merged() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMap(m.refresh())
}

// Get retrieves a merged value by dotted path.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := GetByPath(m.refresh(), path)
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// refresh rebuilds the merged cache if stale. Caller must hold mu.
func (m *Manager) refresh() map[string]any {
	if !m.dirty && m.merged != nil {
		return m.merged
	}
	merged := make(map[string]any)
	for _, l := range m.layers {
		merged = Merge(merged, l.Data)
	}
	m.merged = merged
	m.dirty = false
	return merged
}
