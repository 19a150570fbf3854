// Package leanlsp configures a host LSP client to run the Lean 4
// language server.
//
// The package owns no protocol or process code. It produces a
// Descriptor (command line, document selector, initialization
// options, settings) from a layered, user-overridable settings
// document, and registers it with the host under the provider name
// "lean". The host spawns the server, frames the protocol, routes
// documents through the Selector, and surfaces start failures; this
// package only declares what to run.
//
// # Basic usage
//
//	mgr := settings.New(settings.WithLiveReload(true))
//	if err := mgr.Load(ctx); err != nil {
//	    return err
//	}
//	provider := leanlsp.NewProvider(mgr)
//	if err := leanlsp.Register(host, provider); err != nil {
//	    return err
//	}
//
// The host then calls Descriptor() to learn how to launch the server:
//
//	desc, err := provider.Descriptor()
//	// desc.Command          -> ["lake", "serve"]
//	// desc.Selector         -> .lean files, lean4/lean language ids
//	// desc.InitializationOptions, desc.Settings -> forwarded verbatim
//
// Descriptors are immutable per session: when settings reload, the
// cached descriptor is discarded and the next Descriptor() call
// rebuilds it. The companion packages infoview and unicode implement
// the Lean-specific text features the host wires to its UI.
package leanlsp
