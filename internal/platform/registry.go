package platform

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform/claude"
	"github.com/thoreinstein/aisw/internal/platform/codex"
	"github.com/thoreinstein/aisw/internal/platform/gemini"
)

// Registry holds one adapter per engine and dispatches MCP store calls to
// them. It implements mcp.Store.
type Registry struct {
	claude *claude.ClaudePlatform
	codex  *codex.CodexPlatform
	gemini *gemini.GeminiPlatform
}

var _ mcp.Store = (*Registry)(nil)

// Option configures a Registry.
type Option func(*registryOptions)

type registryOptions struct {
	cfg         *config.Config
	backup      Snapshotter
	logger      *slog.Logger
	claudeScope claude.Scope
	geminiScope gemini.Scope
	projectRoot string
}

// WithConfig applies the engines.<name>.config_dir overrides of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(o *registryOptions) {
		o.cfg = cfg
	}
}

// WithBackup snapshots engine files before they are first modified.
func WithBackup(s Snapshotter) Option {
	return func(o *registryOptions) {
		o.backup = s
	}
}

// WithLogger sets the logger handed to every adapter.
func WithLogger(l *slog.Logger) Option {
	return func(o *registryOptions) {
		o.logger = l
	}
}

// WithClaudeScope selects the Claude Code server list.
func WithClaudeScope(s claude.Scope) Option {
	return func(o *registryOptions) {
		o.claudeScope = s
	}
}

// WithGeminiScope selects the Gemini settings file.
func WithGeminiScope(s gemini.Scope) Option {
	return func(o *registryOptions) {
		o.geminiScope = s
	}
}

// WithProjectRoot sets the project directory used by project and local scopes.
func WithProjectRoot(dir string) Option {
	return func(o *registryOptions) {
		o.projectRoot = dir
	}
}

// NewRegistry builds adapters for every engine.
func NewRegistry(opts ...Option) *Registry {
	o := registryOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	override := func(engine string) string {
		if o.cfg == nil {
			return ""
		}
		return o.cfg.Engines[engine].ConfigDir
	}

	claudeOpts := []claude.Option{
		claude.WithScope(o.claudeScope),
		claude.WithConfigDir(override(paths.EngineClaude)),
		claude.WithProjectRoot(o.projectRoot),
		claude.WithPlatformLogger(o.logger.With("engine", paths.EngineClaude)),
	}
	geminiOpts := []gemini.Option{
		gemini.WithScope(o.geminiScope),
		gemini.WithConfigDir(override(paths.EngineGemini)),
		gemini.WithProjectRoot(o.projectRoot),
		gemini.WithPlatformLogger(o.logger.With("engine", paths.EngineGemini)),
	}
	codexOpts := []codex.ManagerOption{codex.WithLogger(o.logger.With("engine", paths.EngineCodex))}
	if o.backup != nil {
		claudeOpts = append(claudeOpts, claude.WithSnapshotter(o.backup))
		geminiOpts = append(geminiOpts, gemini.WithSnapshotter(o.backup))
		codexOpts = append(codexOpts, codex.WithBackup(o.backup))
	}

	return &Registry{
		claude: claude.NewClaudePlatform(claudeOpts...),
		codex:  codex.NewCodexPlatform(override(paths.EngineCodex), codexOpts...),
		gemini: gemini.NewGeminiPlatform(geminiOpts...),
	}
}

// Claude returns the Claude Code adapter.
func (r *Registry) Claude() *claude.ClaudePlatform { return r.claude }

// Codex returns the Codex CLI adapter.
func (r *Registry) Codex() *codex.CodexPlatform { return r.codex }

// Gemini returns the Gemini CLI adapter.
func (r *Registry) Gemini() *gemini.GeminiPlatform { return r.gemini }

// Engine returns the adapter named name.
// Returns errors.ErrUnknownEngine for anything outside paths.Engines().
func (r *Registry) Engine(name string) (Engine, error) {
	switch name {
	case paths.EngineClaude:
		return r.claude, nil
	case paths.EngineCodex:
		return r.codex, nil
	case paths.EngineGemini:
		return r.gemini, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownEngine, "%q (valid: claude, codex, gemini)", name)
	}
}

// All returns every adapter in the order defined by paths.Engines().
func (r *Registry) All() []Engine {
	names := paths.Engines()
	out := make([]Engine, 0, len(names))
	for _, name := range names {
		e, _ := r.Engine(name)
		out = append(out, e)
	}
	return out
}

// Servers returns the MCP server manager of engine.
func (r *Registry) Servers(engine string) (ServerManager, error) {
	switch engine {
	case paths.EngineClaude:
		return r.claude.MCP(), nil
	case paths.EngineCodex:
		return r.codex.MCP(), nil
	case paths.EngineGemini:
		return r.gemini.MCP(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownEngine, "%q (valid: claude, codex, gemini)", engine)
	}
}

// ListServers implements mcp.Store.
func (r *Registry) ListServers(ctx context.Context, engine string) (map[string]*mcp.Spec, error) {
	m, err := r.Servers(engine)
	if err != nil {
		return nil, err
	}
	return m.List(ctx)
}

// UpsertServer implements mcp.Store.
func (r *Registry) UpsertServer(ctx context.Context, engine, id string, spec *mcp.Spec) error {
	m, err := r.Servers(engine)
	if err != nil {
		return err
	}
	return m.Upsert(ctx, id, spec)
}

// DeleteServer implements mcp.Store.
func (r *Registry) DeleteServer(ctx context.Context, engine, id string) error {
	m, err := r.Servers(engine)
	if err != nil {
		return err
	}
	return m.Delete(ctx, id)
}

// BackupPaths lists the files aisw may rewrite for engine.
func (r *Registry) BackupPaths(engine string) ([]string, error) {
	e, err := r.Engine(engine)
	if err != nil {
		return nil, err
	}
	files := []string{e.MCPConfigPath()}
	if engine == paths.EngineCodex {
		files = append(files, r.codex.AuthPath())
	}
	return files, nil
}
