package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform"
)

// newTestRegistry points every engine at a directory under a temp root.
// Directories are not created.
func newTestRegistry(t *testing.T) (*platform.Registry, map[string]string) {
	t.Helper()
	root := t.TempDir()
	dirs := make(map[string]string)
	cfg := &config.Config{Engines: make(map[string]config.EngineOverride)}
	for _, name := range paths.Engines() {
		dirs[name] = filepath.Join(root, name)
		cfg.Engines[name] = config.EngineOverride{ConfigDir: dirs[name]}
	}
	return platform.NewRegistry(platform.WithConfig(cfg), platform.WithLogger(logging.ForTest(t))), dirs
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	// WriteFile is subject to umask.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatal(err)
	}
}
