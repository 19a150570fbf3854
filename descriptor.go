package leanlsp

import (
	"fmt"

	"github.com/dshills/leanlsp/settings/schema"
)

// Descriptor tells the host LSP client how to launch and route to the
// Lean language server. It is a static value: the host reads it once
// per session and owns everything that happens afterwards (spawn,
// restart, shutdown, protocol framing, document routing).
type Descriptor struct {
	// Command is the argv used to spawn the server. Command[0] must be
	// resolvable on PATH; this package never checks executability —
	// a missing binary surfaces as a host-reported start failure.
	Command []string

	// Selector decides which documents this server applies to.
	Selector Selector

	// InitializationOptions are forwarded verbatim in the initialize
	// handshake.
	InitializationOptions map[string]any

	// Settings are merged into the server's session configuration at
	// runtime (workspace/didChangeConfiguration on most hosts).
	Settings map[string]any
}

// DefaultDescriptor returns the shipped configuration: `lake serve`
// for .lean files with the original plugin's default settings.
func DefaultDescriptor() Descriptor {
	desc, err := FromDocument(schema.NewRegistry().Defaults())
	if err != nil {
		// The shipped defaults always convert; a failure here is a
		// programming error in the registry.
		panic(fmt.Sprintf("leanlsp: default settings are invalid: %v", err))
	}
	return desc
}

// FromDocument builds a Descriptor from a merged settings document.
func FromDocument(doc map[string]any) (Descriptor, error) {
	desc := Descriptor{}

	command, err := stringList(doc, "command")
	if err != nil {
		return Descriptor{}, err
	}
	desc.Command = command

	if sel, ok := doc["selector"].(map[string]any); ok {
		if desc.Selector.Extensions, err = stringList(sel, "extensions"); err != nil {
			return Descriptor{}, fmt.Errorf("selector: %w", err)
		}
		if desc.Selector.LanguageIDs, err = stringList(sel, "languageIds"); err != nil {
			return Descriptor{}, fmt.Errorf("selector: %w", err)
		}
	}

	if opts, ok := doc["initializationOptions"].(map[string]any); ok {
		desc.InitializationOptions = cloneTable(opts)
	}
	if s, ok := doc["settings"].(map[string]any); ok {
		desc.Settings = cloneTable(s)
	}

	if err := desc.Validate(); err != nil {
		return Descriptor{}, err
	}
	return desc, nil
}

// Validate checks the descriptor is usable by a host. It never checks
// that Command[0] exists: resolving and launching the executable is
// the host's job, and a missing binary is a user setup issue.
func (d Descriptor) Validate() error {
	if len(d.Command) == 0 || d.Command[0] == "" {
		return ErrNoCommand
	}
	if d.Selector.Empty() {
		return ErrEmptySelector
	}
	return nil
}

// Clone returns a descriptor sharing no mutable state with the
// original, so host-side mutation cannot corrupt shipped defaults.
func (d Descriptor) Clone() Descriptor {
	out := Descriptor{Selector: d.Selector.clone()}
	if d.Command != nil {
		out.Command = make([]string, len(d.Command))
		copy(out.Command, d.Command)
	}
	out.InitializationOptions = cloneTable(d.InitializationOptions)
	out.Settings = cloneTable(d.Settings)
	return out
}

// stringList reads an optional string list key, accepting the []string
// defaults produce and the []any file loaders produce.
func stringList(doc map[string]any, key string) ([]string, error) {
	v, ok := doc[key]
	if !ok {
		return nil, nil
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
				return nil, fmt.Errorf("%w: %s contains %T", ErrInvalidDocument, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T, want string list", ErrInvalidDocument, key, v)
	}
}

// cloneTable deep-copies a settings table.
func cloneTable(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case map[string]any:
			dst[k] = cloneTable(val)
		case []any:
			list := make([]any, len(val))
			copy(list, val)
			dst[k] = list
		default:
			dst[k] = v
		}
	}
	return dst
}
