package codex

import (
	"path/filepath"

	"github.com/thoreinstein/aisw/internal/paths"
)

// Table prefixes of config.toml that survive a provider switch.
const (
	serversTable  = "mcp_servers"
	projectsTable = "projects"
)

// Paths resolves the Codex files.
type Paths struct {
	dir string
}

// NewPaths returns paths rooted at dir. An empty dir uses $CODEX_HOME or ~/.codex.
func NewPaths(dir string) *Paths {
	if dir == "" {
		dir = paths.GlobalConfigDir(paths.EngineCodex)
	}
	return &Paths{dir: dir}
}

// Dir returns the Codex home directory.
func (p *Paths) Dir() string {
	return p.dir
}

// ConfigPath returns config.toml.
func (p *Paths) ConfigPath() string {
	if p.dir == "" {
		return ""
	}
	return filepath.Join(p.dir, paths.CodexConfigFile)
}

// AuthPath returns auth.json.
func (p *Paths) AuthPath() string {
	if p.dir == "" {
		return ""
	}
	return filepath.Join(p.dir, paths.CodexAuthFile)
}
