package settings

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/dshills/leanlsp/settings/notify"
	"github.com/dshills/leanlsp/settings/schema"
)

// memFS is a mutable in-memory file system for testing.
type memFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) AddFile(path, content string) {
	m.mu.Lock()
	m.files[path] = []byte(content)
	m.mu.Unlock()
}

func (m *memFS) RemoveFile(path string) {
	m.mu.Lock()
	delete(m.files, path)
	m.mu.Unlock()
}

func (m *memFS) Open(name string) (fs.File, error) { return nil, fs.ErrNotExist }

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func newManager(t *testing.T, fsys *memFS, opts ...Option) *Manager {
	t.Helper()
	base := []Option{
		WithUserFile("/user/settings.toml"),
		WithFileSystem(fsys),
		WithEnv(false),
	}
	m := New(append(base, opts...)...)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLoadShippedDefaults(t *testing.T) {
	m := newManager(t, newMemFS())

	command, err := m.GetStringSlice("command")
	if err != nil {
		t.Fatalf("GetStringSlice(command): %v", err)
	}
	if command[0] != "lake" {
		t.Errorf("command[0] = %q, want %q", command[0], "lake")
	}
	if !reflect.DeepEqual(command, []string{"lake", "serve"}) {
		t.Errorf("command = %v", command)
	}

	goals, err := m.GetBool("settings.display_current_goals")
	if err != nil || !goals {
		t.Errorf("display_current_goals = %v, %v", goals, err)
	}
}

func TestDefaultsValidateAgainstSchema(t *testing.T) {
	m := newManager(t, newMemFS(), WithStrictValidation(true))

	v := schema.NewValidator(m.Registry()).WithStrict(true)
	if err := v.Validate(m.Merged()); err != nil {
		t.Errorf("merged defaults should validate: %v", err)
	}
}

func TestUserOverrideRoundTrip(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/user/settings.toml", `
command = ["lean", "--server"]

[initializationOptions]
customFlag = "kept-verbatim"

[settings]
display_nogoals = true
`)
	m := newManager(t, fsys)

	command, err := m.GetStringSlice("command")
	if err != nil {
		t.Fatal(err)
	}
	// Overriding command replaces the whole argv; the default must not
	// be silently reintroduced.
	if !reflect.DeepEqual(command, []string{"lean", "--server"}) {
		t.Errorf("command = %v", command)
	}

	if v, _ := m.Get("initializationOptions.customFlag"); v != "kept-verbatim" {
		t.Errorf("initializationOptions.customFlag = %v", v)
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Errorf("display_nogoals = %v", v)
	}
	// Untouched defaults show through.
	if v, _ := m.Get("settings.display_current_goals"); v != true {
		t.Errorf("display_current_goals = %v", v)
	}
}

func TestRemovingOverridesRestoresDefaults(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/user/settings.toml", `
[settings]
display_nogoals = true
`)
	m := newManager(t, fsys)

	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Fatalf("override not applied: %v", v)
	}

	fsys.RemoveFile("/user/settings.toml")
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	if !reflect.DeepEqual(m.Merged(), m.Registry().Defaults()) {
		t.Error("merged settings differ from shipped defaults after removing overrides")
	}
}

func TestWorkspaceOverridesUser(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/user/settings.toml", `
[settings]
display_mdpopup = false
display_nogoals = true
`)
	fsys.AddFile("/ws/.leanlsp.toml", `
[settings]
display_mdpopup = true
`)
	m := newManager(t, fsys, WithWorkspaceFile("/ws/.leanlsp.toml"))

	if v, _ := m.Get("settings.display_mdpopup"); v != true {
		t.Error("workspace layer should override user layer")
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Error("user layer value lost")
	}
}

func TestSetAndDeleteSessionOverride(t *testing.T) {
	m := newManager(t, newMemFS())

	if err := m.Set("settings.display_nogoals", true); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Error("session override not visible")
	}

	if err := m.Delete("settings.display_nogoals"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if v, _ := m.Get("settings.display_nogoals"); v != false {
		t.Error("default should show through after delete")
	}
}

func TestSetRejectsInvalidValue(t *testing.T) {
	m := newManager(t, newMemFS())

	err := m.Set("settings.display_nogoals", "not a bool")
	if err == nil {
		t.Fatal("Set should validate the value")
	}
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type %T", err)
	}
}

func TestResetDropsSessionOverrides(t *testing.T) {
	m := newManager(t, newMemFS())

	if err := m.Set("settings.display_mdpopup", false); err != nil {
		t.Fatal(err)
	}
	m.Reset()

	if v, _ := m.Get("settings.display_mdpopup"); v != true {
		t.Error("Reset did not restore the default")
	}
	if !reflect.DeepEqual(m.Merged(), m.Registry().Defaults()) {
		t.Error("Reset is not an exact return to defaults")
	}
}

func TestInvalidUserFileFailsLoad(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/user/settings.toml", `command = "should be a list"`)

	m := New(WithUserFile("/user/settings.toml"), WithFileSystem(fsys), WithEnv(false))
	if err := m.Load(context.Background()); err == nil {
		t.Error("Load should fail on a type-invalid document")
	}
}

func TestReloadKeepsPreviousOnParseError(t *testing.T) {
	fsys := newMemFS()
	fsys.AddFile("/user/settings.toml", `
[settings]
display_nogoals = true
`)
	m := newManager(t, fsys)

	fsys.AddFile("/user/settings.toml", "[settings\nbroken")
	if err := m.Reload(context.Background()); err == nil {
		t.Fatal("Reload should fail on a broken file")
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Error("previous settings lost after failed reload")
	}
}

func TestReloadKeepsSessionOverrides(t *testing.T) {
	fsys := newMemFS()
	m := newManager(t, fsys)

	if err := m.Set("settings.display_nogoals", true); err != nil {
		t.Fatal(err)
	}
	if err := m.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Error("session override lost across reload")
	}
}

func TestReloadNotifiesSubscribers(t *testing.T) {
	m := newManager(t, newMemFS())

	var reloads int
	m.Subscribe(func(c notify.Change) {
		if c.Type == notify.ChangeReload {
			reloads++
		}
	})

	if err := m.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if reloads != 1 {
		t.Errorf("reload events = %d, want 1", reloads)
	}
}

func TestReloadBeforeLoad(t *testing.T) {
	m := New(WithUserFile("/user/settings.toml"), WithFileSystem(newMemFS()), WithEnv(false))
	if err := m.Reload(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Reload before Load = %v, want ErrNotLoaded", err)
	}
}

func TestLiveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("[settings]\ndisplay_nogoals = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(WithUserFile(path), WithEnv(false), WithLiveReload(true))
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	reloaded := make(chan struct{}, 1)
	m.Subscribe(func(c notify.Change) {
		if c.Type == notify.ChangeReload {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		}
	})

	if err := os.WriteFile(path, []byte("[settings]\ndisplay_nogoals = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("live reload did not fire")
	}
	if v, _ := m.Get("settings.display_nogoals"); v != true {
		t.Error("live reload did not pick up the new value")
	}
}
