package mcp

import "context"

// Store persists the MCP servers of each engine.
//
// Engines are independent namespaces. Implementations are expected to make
// each call atomic; no merging happens here, so UpsertServer fully replaces
// whatever was stored under id and the last write wins.
type Store interface {
	// ListServers returns every server configured for engine, keyed by id.
	ListServers(ctx context.Context, engine string) (map[string]*Spec, error)

	// UpsertServer creates or replaces the server stored under id.
	UpsertServer(ctx context.Context, engine, id string, spec *Spec) error

	// DeleteServer removes the server stored under id. Removing an id that
	// does not exist is not an error.
	DeleteServer(ctx context.Context, engine, id string) error
}
