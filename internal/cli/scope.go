package cli

import (
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/platform/claude"
	"github.com/thoreinstein/aisw/internal/platform/gemini"
)

// Scope values accepted by --scope.
const (
	ScopeUser    = "user"
	ScopeProject = "project"
	ScopeLocal   = "local"
)

// Scopes is the server list each engine edits for one --scope value.
// Codex has a single config.toml and ignores scope.
type Scopes struct {
	Claude claude.Scope
	Gemini gemini.Scope
}

// ParseScope maps a --scope value onto every engine. Gemini keeps no
// private per-project list, so local selects its project file.
func ParseScope(s string) (Scopes, error) {
	switch s {
	case "", ScopeUser:
		return Scopes{Claude: claude.ScopeUser, Gemini: gemini.ScopeUser}, nil
	case ScopeProject:
		return Scopes{Claude: claude.ScopeProject, Gemini: gemini.ScopeProject}, nil
	case ScopeLocal:
		return Scopes{Claude: claude.ScopeLocal, Gemini: gemini.ScopeProject}, nil
	default:
		return Scopes{}, errors.NewUserError(
			errors.Newf("invalid scope %q", s),
			"Valid scopes are user, project and local")
	}
}
