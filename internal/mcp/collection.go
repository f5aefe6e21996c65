package mcp

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for collection operations.
var (
	// ErrServerNotFound indicates no server is stored under the id.
	ErrServerNotFound = errors.New("MCP server not found")

	// ErrMissingID indicates a blank server id.
	ErrMissingID = errors.New("server id is required")
)

// Collection is a read-through cache of one engine's servers.
//
// Store errors are returned as the store reported them.
//
// Reads populate the cache from the store on first use and after the cache
// has been marked stale. Writes update the cache optimistically and restore
// the previous entry if the store call fails. A call abandoned through its
// context also marks the cache stale, because the store may or may not have
// applied it. Changes made by other writers are only seen after Refresh.
type Collection struct {
	store  Store
	engine string
	logger *slog.Logger

	mu      sync.Mutex
	servers map[string]*Spec
	stale   bool
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithLogger sets the logger used for cache events.
func WithLogger(l *slog.Logger) CollectionOption {
	return func(c *Collection) {
		c.logger = l
	}
}

// NewCollection returns an empty, stale cache over engine's servers.
func NewCollection(store Store, engine string, opts ...CollectionOption) *Collection {
	c := &Collection{
		store:  store,
		engine: engine,
		logger: slog.Default(),
		stale:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Engine returns the engine this collection serves.
func (c *Collection) Engine() string {
	return c.engine
}

// Refresh reloads every server from the store.
func (c *Collection) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Collection) refreshLocked(ctx context.Context) error {
	servers, err := c.store.ListServers(ctx, c.engine)
	if err != nil {
		return err
	}
	if servers == nil {
		servers = make(map[string]*Spec)
	}
	c.servers = servers
	c.stale = false
	c.logger.Debug("refreshed MCP servers", "engine", c.engine, "count", len(servers))
	return nil
}

func (c *Collection) loadLocked(ctx context.Context) error {
	if !c.stale {
		return nil
	}
	return c.refreshLocked(ctx)
}

// Servers returns copies of every cached server.
func (c *Collection) Servers(ctx context.Context) (map[string]*Spec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make(map[string]*Spec, len(c.servers))
	for id, s := range c.servers {
		out[id] = s.Clone()
	}
	return out, nil
}

// IDs returns the cached server ids in sorted order.
func (c *Collection) IDs(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(c.servers)), nil
}

// Get returns a copy of the server stored under id.
func (c *Collection) Get(ctx context.Context, id string) (*Spec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	s, ok := c.servers[id]
	if !ok {
		return nil, errors.Wrapf(ErrServerNotFound, "%s server %q", c.engine, id)
	}
	return s.Clone(), nil
}

// Upsert stores spec under id, replacing any previous server.
func (c *Collection) Upsert(ctx context.Context, id string, spec *Spec) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	if spec == nil || spec.transport == nil {
		return ErrNilTransport
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return err
	}

	prev, existed := c.servers[id]
	c.servers[id] = spec.Clone()

	if err := c.store.UpsertServer(ctx, c.engine, id, spec.Clone()); err != nil {
		c.rollbackLocked(ctx, id, prev, existed)
		return err
	}
	c.logger.Debug("saved MCP server", "engine", c.engine, "id", id, "type", spec.Kind())
	return nil
}

// Delete removes the server stored under id. Deleting an unknown id
// still asks the store, which treats it as a no-op.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return err
	}

	prev, existed := c.servers[id]
	delete(c.servers, id)

	if err := c.store.DeleteServer(ctx, c.engine, id); err != nil {
		c.rollbackLocked(ctx, id, prev, existed)
		return err
	}
	c.logger.Debug("removed MCP server", "engine", c.engine, "id", id)
	return nil
}

// rollbackLocked restores the cache entry for id after a failed write.
func (c *Collection) rollbackLocked(ctx context.Context, id string, prev *Spec, existed bool) {
	if existed {
		c.servers[id] = prev
	} else {
		delete(c.servers, id)
	}
	if ctx.Err() != nil {
		// The store may still apply the abandoned call.
		c.stale = true
		c.logger.Debug("MCP server cache marked stale", "engine", c.engine, "id", id)
	}
}
