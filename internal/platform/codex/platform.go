package codex

import (
	"github.com/thoreinstein/aisw/internal/paths"
)

// CodexPlatform is the Codex CLI engine adapter.
type CodexPlatform struct {
	paths     *Paths
	mcp       *MCPManager
	providers *ProviderManager
}

// NewCodexPlatform creates an adapter rooted at dir ("" for the default).
func NewCodexPlatform(dir string, opts ...ManagerOption) *CodexPlatform {
	p := NewPaths(dir)
	return &CodexPlatform{
		paths:     p,
		mcp:       NewMCPManager(p, opts...),
		providers: NewProviderManager(p, opts...),
	}
}

// Name returns the engine identifier.
func (p *CodexPlatform) Name() string {
	return paths.EngineCodex
}

// DisplayName returns a human-readable name.
func (p *CodexPlatform) DisplayName() string {
	return "Codex CLI"
}

// GlobalConfigDir returns the Codex home directory.
func (p *CodexPlatform) GlobalConfigDir() string {
	return p.paths.Dir()
}

// MCPConfigPath returns config.toml.
func (p *CodexPlatform) MCPConfigPath() string {
	return p.paths.ConfigPath()
}

// AuthPath returns auth.json.
func (p *CodexPlatform) AuthPath() string {
	return p.paths.AuthPath()
}

// MCP returns the server manager.
func (p *CodexPlatform) MCP() *MCPManager {
	return p.mcp
}

// Providers returns the provider manager.
func (p *CodexPlatform) Providers() *ProviderManager {
	return p.providers
}
