package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/thoreinstein/aisw/internal/config"
	aiswerrors "github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/paths"
)

type recordingSnapshotter struct {
	engines []string
}

func (r *recordingSnapshotter) Snapshot(engine string, _ ...string) error {
	r.engines = append(r.engines, engine)
	return nil
}

// newTestRegistry points every engine at its own temp directory.
func newTestRegistry(t *testing.T, opts ...Option) (*Registry, map[string]string) {
	t.Helper()
	dirs := make(map[string]string)
	cfg := &config.Config{Engines: make(map[string]config.EngineOverride)}
	for _, name := range paths.Engines() {
		dir := filepath.Join(t.TempDir(), name)
		dirs[name] = dir
		cfg.Engines[name] = config.EngineOverride{ConfigDir: dir}
	}
	opts = append([]Option{WithConfig(cfg), WithLogger(logging.ForTest(t))}, opts...)
	return NewRegistry(opts...), dirs
}

func TestRegistry_Engine(t *testing.T) {
	r, dirs := newTestRegistry(t)

	for _, name := range paths.Engines() {
		t.Run(name, func(t *testing.T) {
			e, err := r.Engine(name)
			if err != nil {
				t.Fatalf("Engine(%q) error = %v", name, err)
			}
			if e.Name() != name {
				t.Errorf("Name() = %q, want %q", e.Name(), name)
			}
			if e.GlobalConfigDir() != dirs[name] {
				t.Errorf("GlobalConfigDir() = %q, want %q", e.GlobalConfigDir(), dirs[name])
			}
			if want := paths.MCPConfigPathIn(name, dirs[name]); e.MCPConfigPath() != want {
				t.Errorf("MCPConfigPath() = %q, want %q", e.MCPConfigPath(), want)
			}
			if e.DisplayName() == "" {
				t.Error("DisplayName() is empty")
			}
		})
	}
}

func TestRegistry_UnknownEngine(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Engine("opencode"); !errors.Is(err, aiswerrors.ErrUnknownEngine) {
		t.Errorf("Engine(opencode) error = %v, want ErrUnknownEngine", err)
	}
	if _, err := r.ListServers(ctx, "Claude"); !errors.Is(err, aiswerrors.ErrUnknownEngine) {
		t.Errorf("ListServers(Claude) error = %v, want ErrUnknownEngine", err)
	}
	spec, _ := mcp.NewStdio(mcp.Stdio{Command: "x"})
	if err := r.UpsertServer(ctx, "", "id", spec); !errors.Is(err, aiswerrors.ErrUnknownEngine) {
		t.Errorf("UpsertServer(\"\") error = %v, want ErrUnknownEngine", err)
	}
	if err := r.DeleteServer(ctx, "vscode", "id"); !errors.Is(err, aiswerrors.ErrUnknownEngine) {
		t.Errorf("DeleteServer(vscode) error = %v, want ErrUnknownEngine", err)
	}
}

func TestRegistry_All(t *testing.T) {
	r, _ := newTestRegistry(t)
	var names []string
	for _, e := range r.All() {
		names = append(names, e.Name())
	}
	if !reflect.DeepEqual(names, paths.Engines()) {
		t.Errorf("All() = %v, want %v", names, paths.Engines())
	}
}

func TestRegistry_EnginesAreIndependent(t *testing.T) {
	snap := &recordingSnapshotter{}
	r, dirs := newTestRegistry(t, WithBackup(snap))
	ctx := context.Background()

	spec, err := mcp.NewStdio(mcp.Stdio{Command: "npx", Args: mcp.ArgList{"-y", "srv"}})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range paths.Engines() {
		if err := r.UpsertServer(ctx, name, "shared", spec); err != nil {
			t.Fatalf("UpsertServer(%s) error = %v", name, err)
		}
	}
	for _, name := range paths.Engines() {
		if _, err := os.Stat(paths.MCPConfigPathIn(name, dirs[name])); err != nil {
			t.Errorf("%s config not written: %v", name, err)
		}
	}

	if err := r.DeleteServer(ctx, paths.EngineCodex, "shared"); err != nil {
		t.Fatalf("DeleteServer(codex) error = %v", err)
	}

	for _, name := range paths.Engines() {
		servers, err := r.ListServers(ctx, name)
		if err != nil {
			t.Fatalf("ListServers(%s) error = %v", name, err)
		}
		_, ok := servers["shared"]
		if want := name != paths.EngineCodex; ok != want {
			t.Errorf("%s has shared = %v, want %v", name, ok, want)
		}
		if ok && !servers["shared"].Equal(spec) {
			got, _ := servers["shared"].MarshalJSON()
			t.Errorf("%s round trip = %s", name, got)
		}
	}

	for _, name := range paths.Engines() {
		if !slices.Contains(snap.engines, name) {
			t.Errorf("no snapshot recorded for %s (got %v)", name, snap.engines)
		}
	}
}

func TestRegistry_ThroughCollection(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	c := mcp.NewCollection(r, paths.EngineGemini)
	spec, _ := mcp.NewHTTP("https://example.com/mcp", mcp.KeyValuesFromPairs(mcp.Pair{Key: "X-Key", Value: "k"}))
	if err := c.Upsert(ctx, "remote", spec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	fresh := mcp.NewCollection(r, paths.EngineGemini)
	got, err := fresh.Get(ctx, "remote")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.Equal(spec) {
		b, _ := got.MarshalJSON()
		t.Errorf("Get() = %s", b)
	}
}

func TestRegistry_BackupPaths(t *testing.T) {
	r, dirs := newTestRegistry(t)

	tests := []struct {
		engine string
		want   []string
	}{
		{engine: "claude", want: []string{filepath.Join(dirs["claude"], ".claude.json")}},
		{engine: "codex", want: []string{
			filepath.Join(dirs["codex"], "config.toml"),
			filepath.Join(dirs["codex"], "auth.json"),
		}},
		{engine: "gemini", want: []string{filepath.Join(dirs["gemini"], "settings.json")}},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			got, err := r.BackupPaths(tt.engine)
			if err != nil {
				t.Fatalf("BackupPaths() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BackupPaths() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := r.BackupPaths("opencode"); !errors.Is(err, aiswerrors.ErrUnknownEngine) {
		t.Errorf("BackupPaths(opencode) error = %v, want ErrUnknownEngine", err)
	}
}
