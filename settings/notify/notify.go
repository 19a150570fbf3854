// Package notify delivers settings change events to subscribers.
//
// The settings manager publishes an event when a value is set or
// deleted and when the whole document is reloaded (the descriptor is
// rebuilt from scratch on reload, so most consumers only care about
// ChangeReload).
package notify

import "sync"

// ChangeType classifies a settings change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota
	// ChangeDelete indicates a value was removed.
	ChangeDelete
	// ChangeReload indicates the whole document was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is one settings change event.
type Change struct {
	// Path is the dotted path that changed; empty for reloads.
	Path string

	// Type classifies the change.
	Type ChangeType

	// OldValue is the previous value, when known.
	OldValue any

	// NewValue is the new value; nil for deletes.
	NewValue any

	// Source names the layer the change applies to.
	Source string
}

// Observer receives change events.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Notifier fans change events out to subscribers.
type Notifier struct {
	mu sync.RWMutex

	global map[uint64]Observer
	byPath map[string]map[uint64]Observer
	nextID uint64

	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers events from a background goroutine through a
// buffered channel instead of synchronously from Publish.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		global: make(map[uint64]Observer),
		byPath: make(map[string]map[uint64]Observer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.deliverLoop()
	}
	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.global[id] = obs
	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for one path. The observer also
// fires for reload events, which carry no path.
func (n *Notifier) SubscribePath(path string, obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.byPath[path] == nil {
		n.byPath[path] = make(map[uint64]Observer)
	}
	n.byPath[path][id] = obs
	return &Subscription{id: id, notifier: n}
}

// Publish delivers a change to matching subscribers.
func (n *Notifier) Publish(change Change) {
	if n.async {
		n.mu.RLock()
		closed := n.closed
		n.mu.RUnlock()
		if closed {
			return
		}
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}
	n.deliver(change)
}

// Close stops async delivery. Idempotent.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	if n.async {
		n.wg.Wait()
	}
}

func (n *Notifier) deliverLoop() {
	defer n.wg.Done()
	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			// Drain what is already buffered.
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.global))
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	if change.Path != "" {
		for _, obs := range n.byPath[change.Path] {
			observers = append(observers, obs)
		}
	} else if change.Type == ChangeReload {
		for _, set := range n.byPath {
			for _, obs := range set {
				observers = append(observers, obs)
			}
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for path, set := range n.byPath {
		delete(set, id)
		if len(set) == 0 {
			delete(n.byPath, path)
		}
	}
}
