package gemini

import (
	"log/slog"

	"github.com/thoreinstein/aisw/internal/paths"
)

// GeminiPlatform is the Gemini CLI engine adapter.
type GeminiPlatform struct {
	paths *Paths
	mcp   *MCPManager
}

// Option configures a GeminiPlatform instance.
type Option func(*platformOptions)

type platformOptions struct {
	scope       Scope
	configDir   string
	projectRoot string
	backup      Snapshotter
	logger      *slog.Logger
}

// WithScope sets the settings file the adapter edits.
func WithScope(scope Scope) Option {
	return func(o *platformOptions) {
		o.scope = scope
	}
}

// WithConfigDir overrides the ~/.gemini directory.
func WithConfigDir(dir string) Option {
	return func(o *platformOptions) {
		o.configDir = dir
	}
}

// WithProjectRoot sets the project directory for project scope.
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

// NewGeminiPlatform creates a new GeminiPlatform with the given options.
func NewGeminiPlatform(opts ...Option) *GeminiPlatform {
	var o platformOptions
	for _, opt := range opts {
		opt(&o)
	}
	p := NewPaths(o.scope, o.configDir, o.projectRoot)
	mgrOpts := []ManagerOption{WithLogger(o.logger)}
	if o.backup != nil {
		mgrOpts = append(mgrOpts, WithBackup(o.backup))
	}
	return &GeminiPlatform{paths: p, mcp: NewMCPManager(p, mgrOpts...)}
}

// Name returns the engine identifier.
func (p *GeminiPlatform) Name() string {
	return paths.EngineGemini
}

// DisplayName returns a human-readable name.
func (p *GeminiPlatform) DisplayName() string {
	return "Gemini CLI"
}

// GlobalConfigDir returns the Gemini config directory.
func (p *GeminiPlatform) GlobalConfigDir() string {
	return p.paths.configDir
}

// MCPConfigPath returns the settings file holding the servers.
func (p *GeminiPlatform) MCPConfigPath() string {
	return p.paths.MCPConfigPath()
}

// MCP returns the server manager.
func (p *GeminiPlatform) MCP() *MCPManager {
	return p.mcp
}
