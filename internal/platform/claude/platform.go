package claude

import (
	"log/slog"

	"github.com/thoreinstein/aisw/internal/paths"
)

// ClaudePlatform is the Claude Code engine adapter.
type ClaudePlatform struct {
	paths     *Paths
	configDir string
	mcp       *MCPManager
}

// Option configures a ClaudePlatform instance.
type Option func(*platformOptions)

type platformOptions struct {
	scope       Scope
	configDir   string
	projectRoot string
	backup      Snapshotter
	logger      *slog.Logger
}

// WithScope sets the server list the adapter edits.
func WithScope(scope Scope) Option {
	return func(o *platformOptions) {
		o.scope = scope
	}
}

// WithConfigDir overrides the Claude Code config directory. The state
// file is then <dir>/.claude.json.
func WithConfigDir(dir string) Option {
	return func(o *platformOptions) {
		o.configDir = dir
	}
}

// WithProjectRoot sets the project directory for project and local scope.
func WithProjectRoot(root string) Option {
	return func(o *platformOptions) {
		o.projectRoot = root
	}
}

// WithSnapshotter snapshots files before they are first modified.
func WithSnapshotter(s Snapshotter) Option {
	return func(o *platformOptions) {
		o.backup = s
	}
}

// WithPlatformLogger sets the adapter's logger.
func WithPlatformLogger(l *slog.Logger) Option {
	return func(o *platformOptions) {
		o.logger = l
	}
}

// NewClaudePlatform creates a new ClaudePlatform with the given options.
// Default configuration uses ScopeUser and the default state file.
func NewClaudePlatform(opts ...Option) *ClaudePlatform {
	var o platformOptions
	for _, opt := range opts {
		opt(&o)
	}

	configDir := paths.GlobalConfigDir(paths.EngineClaude)
	stateFile := ""
	if o.configDir != "" {
		configDir = o.configDir
		stateFile = paths.MCPConfigPathIn(paths.EngineClaude, o.configDir)
	}

	p := NewPaths(o.scope, stateFile, o.projectRoot)
	mgrOpts := []ManagerOption{WithLogger(o.logger)}
	if o.backup != nil {
		mgrOpts = append(mgrOpts, WithBackup(o.backup))
	}

	return &ClaudePlatform{
		paths:     p,
		configDir: configDir,
		mcp:       NewMCPManager(p, mgrOpts...),
	}
}

// Name returns the engine identifier.
func (p *ClaudePlatform) Name() string {
	return paths.EngineClaude
}

// DisplayName returns a human-readable name.
func (p *ClaudePlatform) DisplayName() string {
	return "Claude Code"
}

// GlobalConfigDir returns the Claude Code config directory.
func (p *ClaudePlatform) GlobalConfigDir() string {
	return p.configDir
}

// MCPConfigPath returns the file holding the scope's servers.
func (p *ClaudePlatform) MCPConfigPath() string {
	return p.paths.MCPConfigPath()
}

// MCP returns the server manager.
func (p *ClaudePlatform) MCP() *MCPManager {
	return p.mcp
}
