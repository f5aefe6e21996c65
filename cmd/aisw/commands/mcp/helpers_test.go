package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/platform"
)

// useTestEngines points newTargets at engines rooted in a temp dir and
// returns the registry backing them.
func useTestEngines(t *testing.T, names ...string) *platform.Registry {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{Engines: map[string]config.EngineOverride{}}
	for _, name := range []string{"claude", "codex", "gemini"} {
		cfg.Engines[name] = config.EngineOverride{ConfigDir: filepath.Join(base, name)}
	}
	reg := platform.NewRegistry(platform.WithConfig(cfg), platform.WithProjectRoot(base))

	engines := make([]platform.Engine, 0, len(names))
	for _, name := range names {
		e, err := reg.Engine(name)
		if err != nil {
			t.Fatalf("Engine(%q) error = %v", name, err)
		}
		engines = append(engines, e)
	}

	prev := newTargets
	newTargets = func(ctx context.Context) ([]target, error) {
		return targetsFor(ctx, reg, engines), nil
	}
	t.Cleanup(func() { newTargets = prev })
	return reg
}

// setFlag assigns a package flag variable for the duration of a test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// seed stores spec under id on every named engine.
func seed(t *testing.T, reg *platform.Registry, id string, spec *mcp.Spec, engines ...string) {
	t.Helper()
	for _, e := range engines {
		if err := reg.UpsertServer(context.Background(), e, id, spec); err != nil {
			t.Fatalf("UpsertServer(%s, %s) error = %v", e, id, err)
		}
	}
}

func getServer(t *testing.T, reg *platform.Registry, engine, id string) *mcp.Spec {
	t.Helper()
	servers, err := reg.ListServers(context.Background(), engine)
	if err != nil {
		t.Fatalf("ListServers(%s) error = %v", engine, err)
	}
	s, ok := servers[id]
	if !ok {
		t.Fatalf("server %q missing on %s", id, engine)
	}
	return s
}

func stdioSpec(t *testing.T, command string, args ...string) *mcp.Spec {
	t.Helper()
	s, err := mcp.NewStdio(mcp.Stdio{Command: command, Args: mcp.ArgList(args)})
	if err != nil {
		t.Fatalf("NewStdio() error = %v", err)
	}
	return s
}
