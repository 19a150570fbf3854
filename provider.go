package leanlsp

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/leanlsp/settings"
	"github.com/dshills/leanlsp/settings/notify"
	"github.com/dshills/leanlsp/settings/schema"
)

// ProviderName is the name this package registers under with the host.
const ProviderName = "lean"

// Host is the contract a host LSP client exposes to server providers.
// The host calls Descriptor() to learn how to launch the server and
// SettingDefinitions() to surface settings in its UI.
type Host interface {
	// RegisterServerProvider registers a named server provider.
	// Registering a name twice is an error.
	RegisterServerProvider(name string, provider ServerProvider) error
}

// ServerProvider supplies a server descriptor to the host.
type ServerProvider interface {
	// Name identifies the provider ("lean").
	Name() string

	// Descriptor returns the current server descriptor. The returned
	// value is a private copy the host may hold for the session.
	Descriptor() (Descriptor, error)

	// SettingDefinitions describes the provider's settings for the
	// host's settings UI.
	SettingDefinitions() []*schema.Setting
}

// Provider implements ServerProvider on top of a settings manager.
//
// The descriptor is built lazily from the merged settings document and
// cached for the session. A settings reload discards the cache; the
// next Descriptor() call rebuilds from the new document. Provider is
// safe for concurrent use.
type Provider struct {
	mu sync.Mutex

	id       string
	mgr      *settings.Manager
	cached   *Descriptor
	reloadCb func()
	sub      *notify.Subscription
	closed   bool
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithReloadCallback is invoked after a settings reload invalidates
// the cached descriptor. Hosts typically restart the server session.
func WithReloadCallback(cb func()) ProviderOption {
	return func(p *Provider) { p.reloadCb = cb }
}

// NewProvider creates a provider over a loaded settings manager.
// Panics if mgr is nil.
func NewProvider(mgr *settings.Manager, opts ...ProviderOption) *Provider {
	if mgr == nil {
		panic("leanlsp: NewProvider called with nil settings manager")
	}

	p := &Provider{
		id:  uuid.NewString(),
		mgr: mgr,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.sub = mgr.Subscribe(func(c notify.Change) {
		if c.Type != notify.ChangeReload {
			return
		}
		p.mu.Lock()
		p.cached = nil
		cb := p.reloadCb
		closed := p.closed
		p.mu.Unlock()
		if cb != nil && !closed {
			cb()
		}
	})
	return p
}

// Name implements ServerProvider.
func (p *Provider) Name() string { return ProviderName }

// ID returns a unique id for this provider instance.
func (p *Provider) ID() string { return p.id }

// SettingDefinitions implements ServerProvider.
func (p *Provider) SettingDefinitions() []*schema.Setting {
	return p.mgr.Registry().Settings()
}

// Descriptor implements ServerProvider. The descriptor reflects the
// settings document at the time of the last load or reload.
func (p *Provider) Descriptor() (Descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return Descriptor{}, &ProviderError{Provider: ProviderName, Err: ErrProviderClosed}
	}
	if p.cached != nil {
		return p.cached.Clone(), nil
	}

	desc, err := FromDocument(p.mgr.Merged())
	if err != nil {
		return Descriptor{}, &ProviderError{Provider: ProviderName, Err: err}
	}
	p.cached = &desc
	return desc.Clone(), nil
}

// Close detaches the provider from settings notifications.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	sub := p.sub
	p.sub = nil
	p.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Register registers the provider with a host LSP client.
func Register(host Host, provider *Provider) error {
	if err := host.RegisterServerProvider(provider.Name(), provider); err != nil {
		return &ProviderError{Provider: provider.Name(), Err: err}
	}
	return nil
}
