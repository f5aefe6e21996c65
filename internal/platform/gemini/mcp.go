package gemini

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform/jsondoc"
)

// serversPointer locates the server map inside settings.json.
var serversPointer = jsondoc.Pointer("mcpServers")

// Snapshotter records the files about to be modified.
type Snapshotter interface {
	Snapshot(engine string, files ...string) error
}

// MCPManager provides CRUD operations for Gemini CLI MCP servers.
type MCPManager struct {
	paths      *Paths
	translator *MCPTranslator
	backup     Snapshotter
	logger     *slog.Logger
}

// ManagerOption configures an MCPManager.
type ManagerOption func(*MCPManager)

// WithBackup snapshots settings.json before the first write.
func WithBackup(s Snapshotter) ManagerOption {
	return func(m *MCPManager) {
		m.backup = s
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *MCPManager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMCPManager creates a new MCPManager instance.
func NewMCPManager(p *Paths, opts ...ManagerOption) *MCPManager {
	m := &MCPManager{
		paths:      p,
		translator: NewMCPTranslator(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns the settings file the manager edits.
func (m *MCPManager) Path() string {
	return m.paths.MCPConfigPath()
}

// List returns every valid server keyed by id. Entries that cannot be
// decoded are logged and skipped; they stay untouched on disk.
func (m *MCPManager) List(ctx context.Context) (map[string]*mcp.Spec, error) {
	servers, problems, err := m.decode(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range slices.Sorted(maps.Keys(problems)) {
		m.logger.Warn("skipping unreadable MCP server", "engine", paths.EngineGemini, "server", id, "error", problems[id])
	}
	return servers, nil
}

// Unreadable returns the decode error of every entry List skips.
func (m *MCPManager) Unreadable(ctx context.Context) (map[string]error, error) {
	_, problems, err := m.decode(ctx)
	return problems, err
}

func (m *MCPManager) decode(ctx context.Context) (map[string]*mcp.Spec, map[string]error, error) {
	doc, err := m.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, err := doc.Members(serversPointer)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading servers from %s", doc.Path())
	}

	servers := make(map[string]*mcp.Spec, len(entries))
	problems := make(map[string]error)
	for id, entry := range entries {
		spec, err := m.translator.FromEngine(entry)
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
	entry, err := m.translator.ToEngine(spec)
	if err != nil {
		return errors.Wrapf(err, "encoding server %q", id)
	}
	doc, err := m.load(ctx)
	if err != nil {
		return err
	}
	if err := doc.Set(serversPointer+jsondoc.Pointer(id), entry); err != nil {
		return errors.Wrapf(err, "setting server %q", id)
	}
	return m.save(ctx, doc, "upsert", id)
}

// Delete removes the server stored under id. Removing a missing id is not an error.
func (m *MCPManager) Delete(ctx context.Context, id string) error {
	doc, err := m.load(ctx)
	if err != nil {
		return err
	}
	removed, err := doc.Remove(serversPointer + jsondoc.Pointer(id))
	if err != nil {
		return errors.Wrapf(err, "removing server %q", id)
	}
	if !removed {
		return nil
	}
	return m.save(ctx, doc, "delete", id)
}

func (m *MCPManager) load(ctx context.Context) (*jsondoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := m.paths.MCPConfigPath()
	if path == "" {
		return nil, errors.New("gemini settings path not configured")
	}
	return jsondoc.Load(path)
}

func (m *MCPManager) save(ctx context.Context, doc *jsondoc.Document, op, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.backup != nil {
		if err := m.backup.Snapshot(paths.EngineGemini, doc.Path()); err != nil {
			return errors.Wrap(err, "backing up gemini settings")
		}
	}
	if err := doc.Save(); err != nil {
		return errors.Wrap(err, "writing gemini settings")
	}
	m.logger.Debug("wrote MCP server", "engine", paths.EngineGemini, "op", op, "server", id, "path", doc.Path())
	return nil
}
