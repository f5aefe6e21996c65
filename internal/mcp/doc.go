// Package mcp models MCP server definitions independently of any engine.
//
// A [Spec] is a validated server with exactly one active transport:
// [Stdio], [HTTP] or [SSE]. Transport is a closed interface, so a spec
// carrying both a command and a URL cannot be built. Fields the model does
// not know about travel with the spec and are written back unchanged.
//
// A [Draft] is the editable form of a server. It holds every field of
// every transport so that switching the type while editing keeps what was
// typed, and it has a raw JSON view ([EncodeDraft], [DecodeDraft]) for
// copy-paste editing. [Validate] is the gate between the two:
//
//	d := &mcp.Draft{Type: mcp.KindStdio}
//	err := mcp.Validate(d) // errors.Is(err, mcp.ErrMissingCommand)
//
// Persistence goes through a [Store] keyed by engine and server id; a
// [Collection] caches one engine's servers on top of it.
package mcp
