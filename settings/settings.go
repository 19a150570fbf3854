// Package settings manages the Lean language server settings document.
//
// Settings are organized in layers, higher layers overriding lower:
//
//	4. Session overrides   (Set/Delete at runtime)
//	3. Environment         (LEANLSP_* variables)
//	2. Workspace file      (<workspace>/.leanlsp.toml)
//	1. User file           (~/.config/leanlsp/settings.toml)
//	0. Shipped defaults    (schema registry)
//
// The merged document feeds the server descriptor handed to the host
// LSP client. The document is read once at load and again on reload;
// consumers treat each merged snapshot as immutable.
package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/leanlsp/settings/layer"
	"github.com/dshills/leanlsp/settings/loader"
	"github.com/dshills/leanlsp/settings/notify"
	"github.com/dshills/leanlsp/settings/schema"
	"github.com/dshills/leanlsp/settings/watcher"
)

// DefaultFileName is the settings file name looked up in the user
// config directory and (dot-prefixed) in the workspace.
const DefaultFileName = "settings.toml"

// Manager provides merged access to the settings layers.
type Manager struct {
	mu sync.RWMutex

	layers    *layer.Manager
	registry  *schema.Registry
	validator *schema.Validator
	notifier  *notify.Notifier
	watcher   *watcher.Watcher

	fs            loader.FileSystem
	userFile      string
	workspaceFile string

	enableEnv    bool
	enableWatch  bool
	strict       bool
	loaded       bool
	watchStarted bool
	watchQuit    chan struct{}
	watchDone    chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithUserFile sets the user settings file path.
func WithUserFile(path string) Option {
	return func(m *Manager) { m.userFile = path }
}

// WithWorkspaceFile sets the workspace settings file path.
func WithWorkspaceFile(path string) Option {
	return func(m *Manager) { m.workspaceFile = path }
}

// WithFileSystem sets the file system used to read settings files.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(m *Manager) { m.fs = fs }
}

// WithEnv enables or disables the environment layer.
func WithEnv(enable bool) Option {
	return func(m *Manager) { m.enableEnv = enable }
}

// WithLiveReload enables watching the settings files for changes.
func WithLiveReload(enable bool) Option {
	return func(m *Manager) { m.enableWatch = enable }
}

// WithStrictValidation makes unknown non-forwarded keys load errors.
func WithStrictValidation(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// New creates a Manager. Call Load before reading values.
func New(opts ...Option) *Manager {
	m := &Manager{
		layers:    layer.NewManager(),
		registry:  schema.NewRegistry(),
		notifier:  notify.New(),
		fs:        loader.DefaultFS(),
		enableEnv: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.userFile == "" {
		m.userFile = defaultUserFile()
	}
	m.validator = schema.NewValidator(m.registry).WithStrict(m.strict)
	return m
}

// defaultUserFile returns ~/.config/leanlsp/settings.toml, honoring
// XDG_CONFIG_HOME.
func defaultUserFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "leanlsp", DefaultFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "leanlsp", DefaultFileName)
}

// Registry exposes the setting definitions, for the host settings UI.
func (m *Manager) Registry() *schema.Registry { return m.registry }

// Load builds all layers and validates the merged document. Missing
// settings files are fine; an invalid document is not.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	builtin := layer.NewWithData(layer.SourceBuiltin, m.registry.Defaults())
	builtin.ReadOnly = true
	m.layers.Add(builtin)

	if err := m.loadFileLayers(); err != nil {
		return err
	}

	if m.enableEnv {
		data, err := loader.NewEnvLoader().Load()
		if err != nil {
			return fmt.Errorf("loading environment settings: %w", err)
		}
		m.layers.Add(layer.NewWithData(layer.SourceEnv, data))
	}

	m.layers.Add(layer.New(layer.SourceSession))

	if err := m.validator.Validate(m.layers.Merged()); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	m.loaded = true

	if m.enableWatch && !m.watchStarted {
		if err := m.startWatcher(); err != nil {
			return fmt.Errorf("starting settings watcher: %w", err)
		}
	}
	return nil
}

// loadFileLayers (re)loads the user and workspace file layers.
// Caller must hold mu.
func (m *Manager) loadFileLayers() error {
	for _, src := range []struct {
		path   string
		source layer.Source
	}{
		{m.userFile, layer.SourceUser},
		{m.workspaceFile, layer.SourceWorkspace},
	} {
		if src.path == "" {
			continue
		}
		data, err := m.loadFile(src.path)
		if err != nil {
			return err
		}
		l := layer.NewWithData(src.source, data)
		l.Path = src.path
		m.layers.Add(l)
	}
	return nil
}

func (m *Manager) loadFile(path string) (map[string]any, error) {
	var fl loader.FileLoader
	switch loader.ForPath(path).(type) {
	case *loader.JSONLoader:
		fl = loader.NewJSONLoaderWithFS(m.fs, path)
	case *loader.YAMLLoader:
		fl = loader.NewYAMLLoaderWithFS(m.fs, path)
	default:
		fl = loader.NewTOMLLoaderWithFS(m.fs, path)
	}
	return fl.Load()
}

// Reload re-reads the file and environment layers, keeping session
// overrides, then revalidates and notifies subscribers. A reload with
// an invalid document leaves the previous layers in place.
func (m *Manager) Reload(ctx context.Context) error {
	m.mu.Lock()

	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return err
	}
	if !m.loaded {
		m.mu.Unlock()
		return ErrNotLoaded
	}

	// Stage the reload against a copy so a bad file cannot clobber a
	// working configuration.
	staged := layer.NewManager()
	for _, l := range m.layers.Layers() {
		if l.Source == layer.SourceBuiltin || l.Source == layer.SourceSession {
			staged.Add(l.Clone())
		}
	}

	prev := m.layers
	m.layers = staged
	if err := m.loadFileLayers(); err != nil {
		m.layers = prev
		m.mu.Unlock()
		return err
	}
	if m.enableEnv {
		data, err := loader.NewEnvLoader().Load()
		if err != nil {
			m.layers = prev
			m.mu.Unlock()
			return fmt.Errorf("loading environment settings: %w", err)
		}
		m.layers.Add(layer.NewWithData(layer.SourceEnv, data))
	}
	if err := m.validator.Validate(m.layers.Merged()); err != nil {
		m.layers = prev
		m.mu.Unlock()
		return fmt.Errorf("invalid settings: %w", err)
	}
	m.mu.Unlock()

	m.notifier.Publish(notify.Change{Type: notify.ChangeReload})
	return nil
}

// startWatcher wires the fsnotify watcher to Reload. Caller holds mu.
func (m *Manager) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	for _, path := range []string{m.userFile, m.workspaceFile} {
		if path == "" {
			continue
		}
		if err := w.Watch(path); err != nil && err != watcher.ErrAlreadyWatching {
			_ = w.Close()
			return err
		}
	}

	m.watcher = w
	m.watchStarted = true
	m.watchQuit = make(chan struct{})
	m.watchDone = make(chan struct{})

	quit := m.watchQuit
	done := m.watchDone
	go func() {
		defer close(done)
		for {
			select {
			case <-quit:
				return
			case <-w.Events():
				// A failed reload keeps the previous settings; the
				// host learns about persistent problems on its own
				// reload.
				_ = m.Reload(context.Background())
			}
		}
	}()
	return nil
}

// Merged returns a deep copy of the merged settings document.
func (m *Manager) Merged() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layers.Merged()
}

// Get retrieves a merged value by dotted path.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.layers.Get(path)
}

// Set stores a session override after validating it.
func (m *Manager) Set(path string, value any) error {
	if err := m.validator.ValidatePath(path, value); err != nil {
		return err
	}

	m.mu.Lock()
	session := m.layers.BySource(layer.SourceSession)
	if session == nil {
		m.mu.Unlock()
		return ErrNotLoaded
	}
	old, _ := m.layers.Get(path)
	if !session.Set(path, value) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	m.layers.Invalidate()
	m.mu.Unlock()

	m.notifier.Publish(notify.Change{
		Path:     path,
		Type:     notify.ChangeSet,
		OldValue: old,
		NewValue: value,
		Source:   layer.SourceSession.String(),
	})
	return nil
}

// Delete removes a session override. Lower layers show through again.
func (m *Manager) Delete(path string) error {
	m.mu.Lock()
	session := m.layers.BySource(layer.SourceSession)
	if session == nil {
		m.mu.Unlock()
		return ErrNotLoaded
	}
	old, _ := m.layers.Get(path)
	if !session.Delete(path) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	m.layers.Invalidate()
	m.mu.Unlock()

	m.notifier.Publish(notify.Change{
		Path:     path,
		Type:     notify.ChangeDelete,
		OldValue: old,
		Source:   layer.SourceSession.String(),
	})
	return nil
}

// Reset drops all session overrides. With no file or environment
// overrides present the merged document is again exactly the shipped
// defaults.
func (m *Manager) Reset() {
	m.mu.Lock()
	session := m.layers.BySource(layer.SourceSession)
	if session != nil {
		session.Data = make(map[string]any)
		m.layers.Invalidate()
	}
	m.mu.Unlock()

	m.notifier.Publish(notify.Change{Type: notify.ChangeReload})
}

// Subscribe registers an observer for all settings changes.
func (m *Manager) Subscribe(obs notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(obs)
}

// SubscribePath registers an observer for one dotted path.
func (m *Manager) SubscribePath(path string, obs notify.Observer) *notify.Subscription {
	return m.notifier.SubscribePath(path, obs)
}

// Close stops the watcher and the notifier.
func (m *Manager) Close() error {
	m.mu.Lock()
	w := m.watcher
	quit := m.watchQuit
	done := m.watchDone
	m.watcher = nil
	m.watchStarted = false
	m.mu.Unlock()

	if w != nil {
		close(quit)
		<-done
		if err := w.Close(); err != nil {
			return err
		}
	}
	m.notifier.Close()
	return nil
}
