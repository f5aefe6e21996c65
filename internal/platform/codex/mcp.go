package codex

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/paths"
)

// Snapshotter records the files about to be modified.
type Snapshotter interface {
	Snapshot(engine string, files ...string) error
}

// MCPManager provides CRUD operations for the [mcp_servers.*] tables.
type MCPManager struct {
	paths      *Paths
	translator *MCPTranslator
	backup     Snapshotter
	logger     *slog.Logger
}

// ManagerOption configures an MCPManager or ProviderManager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	backup Snapshotter
	logger *slog.Logger
}

// WithBackup snapshots the Codex files before the first write.
func WithBackup(s Snapshotter) ManagerOption {
	return func(o *managerOptions) {
		o.backup = s
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(o *managerOptions) {
		o.logger = l
	}
}

func applyOptions(opts []ManagerOption) managerOptions {
	o := managerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// NewMCPManager creates a new MCPManager instance.
func NewMCPManager(p *Paths, opts ...ManagerOption) *MCPManager {
	o := applyOptions(opts)
	return &MCPManager{
		paths:      p,
		translator: NewMCPTranslator(),
		backup:     o.backup,
		logger:     o.logger,
	}
}

// Path returns config.toml.
func (m *MCPManager) Path() string {
	return m.paths.ConfigPath()
}

// List returns every valid server keyed by id. Tables that cannot be
// decoded are logged and skipped.
func (m *MCPManager) List(ctx context.Context) (map[string]*mcp.Spec, error) {
	servers, problems, err := m.decode(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range slices.Sorted(maps.Keys(problems)) {
		m.logger.Warn("skipping unreadable MCP server", "engine", paths.EngineCodex, "server", id, "error", problems[id])
	}
	return servers, nil
}

// Unreadable returns the decode error of every table List skips.
func (m *MCPManager) Unreadable(ctx context.Context) (map[string]error, error) {
	_, problems, err := m.decode(ctx)
	return problems, err
}

func (m *MCPManager) decode(ctx context.Context) (map[string]*mcp.Spec, map[string]error, error) {
	_, tables, err := m.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	servers := make(map[string]*mcp.Spec, len(tables))
	problems := make(map[string]error)
	for id, table := range tables {
		spec, err := m.translator.FromEngine(table)
		if err != nil {
			problems[id] = err
			continue
		}
		servers[id] = spec
	}
	return servers, problems, nil
}

// Upsert creates or replaces the server stored under id.
func (m *MCPManager) Upsert(ctx context.Context, id string, spec *mcp.Spec) error {
	table, err := m.translator.ToEngine(spec)
	if err != nil {
		return errors.Wrapf(err, "encoding server %q", id)
	}
	text, tables, err := m.load(ctx)
	if err != nil {
		return err
	}
	tables[id] = table
	return m.save(ctx, text, tables, "upsert", id)
}

// Delete removes the server stored under id. Removing a missing id is not an error.
func (m *MCPManager) Delete(ctx context.Context, id string) error {
	text, tables, err := m.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := tables[id]; !ok {
		return nil
	}
	delete(tables, id)
	return m.save(ctx, text, tables, "delete", id)
}

func (m *MCPManager) load(ctx context.Context) (string, map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	text, err := readText(m.paths.ConfigPath())
	if err != nil {
		return "", nil, err
	}
	tables, err := decodeServers(text)
	if err != nil {
		return "", nil, errors.Wrapf(err, "reading %s", m.paths.ConfigPath())
	}
	return text, tables, nil
}

// save rewrites the server tables and keeps everything else verbatim.
func (m *MCPManager) save(ctx context.Context, text string, tables map[string]map[string]any, op, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rendered, err := renderServers(tables)
	if err != nil {
		return err
	}
	out := fragment.Join(fragment.StripSections(text, serversTable), rendered)

	path := m.paths.ConfigPath()
	if m.backup != nil {
		if err := m.backup.Snapshot(paths.EngineCodex, path, m.paths.AuthPath()); err != nil {
			return errors.Wrap(err, "backing up codex config")
		}
	}
	if err := writeConfig(path, out); err != nil {
		return err
	}
	m.logger.Debug("wrote MCP server", "engine", paths.EngineCodex, "op", op, "server", id, "path", path)
	return nil
}
