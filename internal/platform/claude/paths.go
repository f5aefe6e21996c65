package claude

import (
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform/jsondoc"
)

// Scope selects which Claude Code server list is edited.
type Scope int

const (
	// ScopeUser is the "mcpServers" member of the user state file.
	ScopeUser Scope = iota
	// ScopeProject is <projectRoot>/.mcp.json, shared through version control.
	ScopeProject
	// ScopeLocal is the per-project entry of the user state file.
	ScopeLocal
)

// ParseScope converts a flag value to a Scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "user":
		return ScopeUser, nil
	case "project":
		return ScopeProject, nil
	case "local":
		return ScopeLocal, nil
	default:
		return ScopeUser, errors.Newf("invalid claude scope %q (valid: user, project, local)", s)
	}
}

// String returns the flag spelling of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeProject:
		return "project"
	case ScopeLocal:
		return "local"
	default:
		return "user"
	}
}

// projectMCPFile is the project-scoped server file.
const projectMCPFile = ".mcp.json"

// Paths resolves the Claude Code files for one scope.
type Paths struct {
	scope       Scope
	stateFile   string
	projectRoot string
}

// NewPaths returns paths for scope. An empty stateFile uses the default
// location; projectRoot is required for project and local scope.
func NewPaths(scope Scope, stateFile, projectRoot string) *Paths {
	if stateFile == "" {
		stateFile = paths.MCPConfigPath(paths.EngineClaude)
	}
	return &Paths{scope: scope, stateFile: stateFile, projectRoot: projectRoot}
}

// Scope returns the configured scope.
func (p *Paths) Scope() Scope {
	return p.scope
}

// MCPConfigPath returns the file that holds the scope's servers.
func (p *Paths) MCPConfigPath() string {
	if p.scope == ScopeProject {
		if p.projectRoot == "" {
			return ""
		}
		return filepath.Join(p.projectRoot, projectMCPFile)
	}
	return p.stateFile
}

// ServersPointer returns the JSON pointer of the server map inside
// MCPConfigPath.
func (p *Paths) ServersPointer() (string, error) {
	if p.scope != ScopeLocal {
		return jsondoc.Pointer("mcpServers"), nil
	}
	if p.projectRoot == "" {
		return "", errors.New("local scope requires a project directory")
	}
	abs, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return "", errors.Wrapf(err, "resolving project root %q", p.projectRoot)
	}
	return jsondoc.Pointer("projects", abs, "mcpServers"), nil
}
