// Package gemini reads and writes the MCP servers of Gemini CLI.
//
// Servers live under the "mcpServers" member of settings.json, either the
// user file (~/.gemini/settings.json) or the project file
// (<project>/.gemini/settings.json). Gemini spells the transport through
// the URL key instead of a "type" field:
//
//	{"command": "npx", "args": [...], "env": {...}, "cwd": "..."}  stdio
//	{"url": "https://.../sse", "headers": {...}}                    sse
//	{"httpUrl": "https://.../mcp", "headers": {...}}                http
package gemini

import (
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/paths"
)

// Scope defines whether paths resolve to user-level or project-level configuration.
type Scope int

const (
	// ScopeUser resolves paths relative to ~/.gemini/
	ScopeUser Scope = iota
	// ScopeProject resolves paths relative to <projectRoot>/.gemini/
	ScopeProject
)

// ParseScope converts a flag value to a Scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "user":
		return ScopeUser, nil
	case "project":
		return ScopeProject, nil
	default:
		return ScopeUser, errors.Newf("invalid gemini scope %q (valid: user, project)", s)
	}
}

// Paths provides Gemini-specific path resolution.
type Paths struct {
	scope       Scope
	configDir   string
	projectRoot string
}

// NewPaths creates a Paths instance. An empty configDir uses ~/.gemini.
// For ScopeProject, projectRoot must be non-empty.
func NewPaths(scope Scope, configDir, projectRoot string) *Paths {
	if configDir == "" {
		configDir = paths.GlobalConfigDir(paths.EngineGemini)
	}
	return &Paths{scope: scope, configDir: configDir, projectRoot: projectRoot}
}

// BaseDir returns the base configuration directory.
// For ScopeUser: ~/.gemini/
// For ScopeProject: <projectRoot>/.gemini/
// Returns empty string if projectRoot is empty for ScopeProject.
func (p *Paths) BaseDir() string {
	switch p.scope {
	case ScopeUser:
		return p.configDir
	case ScopeProject:
		if p.projectRoot == "" {
			return ""
		}
		return filepath.Join(p.projectRoot, ".gemini")
	default:
		return ""
	}
}

// MCPConfigPath returns the settings file holding the servers.
func (p *Paths) MCPConfigPath() string {
	return paths.MCPConfigPathIn(paths.EngineGemini, p.BaseDir())
}
