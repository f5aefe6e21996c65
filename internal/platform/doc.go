// Package platform wires the per-engine adapters of aisw together.
//
// The claude, codex and gemini subpackages each read and write one
// engine's native configuration dialect. [Registry] builds all three from
// the aisw configuration and exposes them as a single [mcp.Store], keyed by
// engine name:
//
//	reg := platform.NewRegistry(
//	    platform.WithConfig(cfg),
//	    platform.WithBackup(backup.NewManager()),
//	)
//	servers, err := reg.ListServers(ctx, paths.EngineCodex)
//
// Unknown engine names fail with errors.ErrUnknownEngine.
//
// # Detection
//
// Use [Detect] or [Registry.Detect] to see which engines are set up on the
// current machine:
//
//	for _, result := range reg.Detect() {
//	    fmt.Printf("%s: %s\n", result.Name, result.Status)
//	}
//
// An engine is [StatusInstalled] when both its config directory and MCP
// file exist, [StatusPartial] when only one does, and [StatusNotInstalled]
// otherwise.
package platform
