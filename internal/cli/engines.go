// Package cli provides CLI-specific helpers shared by the aisw commands.
package cli

import (
	"slices"
	"strings"

	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform"
)

// ErrNoEnginesAvailable is returned when no engine was named and none of
// the default engines is installed.
var ErrNoEnginesAvailable = errors.New("no engines available")

// ResolveEngines returns the adapters for names. With no names, the
// installed engines among defaults are used; an empty defaults list means
// every engine.
func ResolveEngines(r *platform.Registry, names, defaults []string) ([]platform.Engine, error) {
	if len(names) > 0 {
		return explicitEngines(r, names)
	}

	if len(defaults) == 0 {
		defaults = paths.Engines()
	}
	var engines []platform.Engine
	for _, d := range r.Installed() {
		if !slices.Contains(defaults, d.Name) {
			continue
		}
		e, err := r.Engine(d.Name)
		if err != nil {
			continue
		}
		engines = append(engines, e)
	}
	if len(engines) == 0 {
		return nil, errors.NewUserError(ErrNoEnginesAvailable,
			"Install Claude Code, Codex CLI or Gemini CLI, or pass --engine explicitly")
	}
	return engines, nil
}

// ResolveEngine is ResolveEngines for commands that act on exactly one
// engine.
func ResolveEngine(r *platform.Registry, names, defaults []string) (platform.Engine, error) {
	engines, err := ResolveEngines(r, names, defaults)
	if err != nil {
		return nil, err
	}
	if len(engines) != 1 {
		ids := make([]string, len(engines))
		for i, e := range engines {
			ids[i] = e.Name()
		}
		return nil, errors.NewUserError(
			errors.Newf("this command needs exactly one engine, got %s", strings.Join(ids, ", ")),
			"Select one with --engine")
	}
	return engines[0], nil
}

func explicitEngines(r *platform.Registry, names []string) ([]platform.Engine, error) {
	var invalid []string
	engines := make([]platform.Engine, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if seen[name] {
			continue
		}
		seen[name] = true
		e, err := r.Engine(name)
		if err != nil {
			invalid = append(invalid, name)
			continue
		}
		engines = append(engines, e)
	}
	if len(invalid) > 0 {
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownEngine, "%s (valid: %s)",
				strings.Join(invalid, ", "), strings.Join(paths.Engines(), ", ")),
			"Run 'aisw --help' to see valid engines")
	}
	return engines, nil
}
