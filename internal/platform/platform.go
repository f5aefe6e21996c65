package platform

import (
	"context"

	"github.com/thoreinstein/aisw/internal/mcp"
)

// Engine defines the contract for engine adapters.
// Each supported AI coding assistant (Claude Code, Codex, Gemini CLI)
// implements this interface.
//
// The methods return static configuration data that does not change during
// the lifetime of an adapter instance.
type Engine interface {
	// Name returns the engine identifier (claude, codex, gemini).
	// The name must match one of the constants in the paths package
	// (e.g., paths.EngineClaude).
	Name() string

	// DisplayName returns a human-readable name.
	DisplayName() string

	// GlobalConfigDir returns the engine's configuration directory.
	//
	// Examples:
	//   - claude: ~/.claude/
	//   - codex: ~/.codex/
	//   - gemini: ~/.gemini/
	GlobalConfigDir() string

	// MCPConfigPath returns the file holding the engine's MCP servers.
	//
	// Examples:
	//   - claude: ~/.claude.json
	//   - codex: ~/.codex/config.toml
	//   - gemini: ~/.gemini/settings.json
	MCPConfigPath() string
}

// ServerManager is the per-engine MCP server CRUD surface.
type ServerManager interface {
	List(ctx context.Context) (map[string]*mcp.Spec, error)
	Upsert(ctx context.Context, id string, spec *mcp.Spec) error
	Delete(ctx context.Context, id string) error

	// Unreadable reports entries that List skips, keyed by id.
	Unreadable(ctx context.Context) (map[string]error, error)
}

// Snapshotter records the files about to be modified.
// backup.Manager satisfies it.
type Snapshotter interface {
	Snapshot(engine string, files ...string) error
}
