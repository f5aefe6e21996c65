package cli

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thoreinstein/aisw/internal/config"
	aiswerrors "github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/platform"
)

// newTestRegistry points every engine at a directory under a temp dir.
// Engines listed in installed get their directory created.
func newTestRegistry(t *testing.T, installed ...string) *platform.Registry {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{Engines: map[string]config.EngineOverride{}}
	for _, name := range []string{"claude", "codex", "gemini"} {
		dir := filepath.Join(base, name)
		cfg.Engines[name] = config.EngineOverride{ConfigDir: dir}
	}
	for _, name := range installed {
		if err := os.MkdirAll(cfg.Engines[name].ConfigDir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return platform.NewRegistry(platform.WithConfig(cfg), platform.WithProjectRoot(base))
}

func names(engines []platform.Engine) []string {
	out := make([]string, len(engines))
	for i, e := range engines {
		out[i] = e.Name()
	}
	return out
}

func TestResolveEngines(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		names     []string
		defaults  []string
		want      []string
		wantErr   error
	}{
		{
			name:      "explicit names ignore detection",
			installed: nil,
			names:     []string{"gemini", "claude"},
			want:      []string{"gemini", "claude"},
		},
		{
			name:  "explicit names are normalized and deduplicated",
			names: []string{" Codex", "codex"},
			want:  []string{"codex"},
		},
		{
			name:    "unknown engine",
			names:   []string{"claude", "opencode"},
			wantErr: aiswerrors.ErrUnknownEngine,
		},
		{
			name:      "detected engines in display order",
			installed: []string{"gemini", "claude"},
			want:      []string{"claude", "gemini"},
		},
		{
			name:      "defaults filter detected engines",
			installed: []string{"claude", "codex"},
			defaults:  []string{"codex"},
			want:      []string{"codex"},
		},
		{
			name:    "nothing installed",
			wantErr: ErrNoEnginesAvailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t, tt.installed...)
			got, err := ResolveEngines(r, tt.names, tt.defaults)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveEngines() error = %v, want %v", err, tt.wantErr)
				}
				if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitUser {
					t.Errorf("ExitCode() = %d, want %d", code, aiswerrors.ExitUser)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveEngines() error = %v", err)
			}
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("ResolveEngines() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestResolveEngine(t *testing.T) {
	r := newTestRegistry(t, "claude", "codex")

	if _, err := ResolveEngine(r, nil, nil); err == nil {
		t.Error("ResolveEngine() with two installed engines expected error")
	}

	e, err := ResolveEngine(r, []string{"codex"}, nil)
	if err != nil {
		t.Fatalf("ResolveEngine() error = %v", err)
	}
	if e.Name() != "codex" {
		t.Errorf("ResolveEngine() = %q, want codex", e.Name())
	}
}
