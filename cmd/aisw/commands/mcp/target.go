package mcp

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/platform"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	engineColor = color.New(color.FgCyan)
	labelColor  = color.New(color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	dimColor    = color.New(color.FgHiBlack)
)

// target is one engine and its server collection.
type target struct {
	engine  platform.Engine
	servers *mcp.Collection
}

// newTargets resolves the --engine flag into server collections.
var newTargets = func(ctx context.Context) ([]target, error) {
	reg, err := cli.NewRegistry(flags.Settings(ctx))
	if err != nil {
		return nil, err
	}
	engines, err := cli.ResolveEngines(reg, flags.GetEngineFlag(), flags.DefaultEngines())
	if err != nil {
		return nil, err
	}
	return targetsFor(ctx, reg, engines), nil
}

func targetsFor(ctx context.Context, store mcp.Store, engines []platform.Engine) []target {
	logger := logging.FromContext(ctx)
	out := make([]target, len(engines))
	for i, e := range engines {
		out[i] = target{
			engine:  e,
			servers: mcp.NewCollection(store, e.Name(), mcp.WithLogger(logger)),
		}
	}
	return out
}

// singleTarget resolves the --engine flag to exactly one engine.
func singleTarget(ctx context.Context) (target, error) {
	targets, err := newTargets(ctx)
	if err != nil {
		return target{}, err
	}
	if len(targets) != 1 {
		return target{}, errors.NewUserError(
			errors.Newf("this command edits one engine at a time, %d selected", len(targets)),
			"Select one with --engine")
	}
	return targets[0], nil
}

// withServer returns the targets that have a server named id. It fails
// when none does.
func withServer(ctx context.Context, targets []target, id string) ([]target, error) {
	var found []target
	for _, t := range targets {
		if _, err := t.servers.Get(ctx, id); err != nil {
			if errors.Is(err, mcp.ErrServerNotFound) {
				continue
			}
			return nil, errors.Wrapf(err, "reading %s servers", t.engine.DisplayName())
		}
		found = append(found, t)
	}
	if len(found) == 0 {
		return nil, errors.NewUserError(
			errors.Wrapf(mcp.ErrServerNotFound, "%q", id),
			"Run 'aisw mcp list' to see configured servers")
	}
	return found, nil
}

// parsePairs parses KEY=VALUE flag values in order.
func parsePairs(values []string, flagName string) ([]mcp.Pair, error) {
	pairs := make([]mcp.Pair, 0, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.NewUserError(
				errors.Newf("invalid %s value %q", flagName, v),
				"Use KEY=VALUE")
		}
		pairs = append(pairs, mcp.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

func sortedIDs(servers map[string]*mcp.Spec) []string {
	return slices.Sorted(maps.Keys(servers))
}
