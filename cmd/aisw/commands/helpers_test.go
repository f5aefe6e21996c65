package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/config"
)

// useTestConfig installs a loaded configuration whose engines live under a
// temp dir and returns that dir. Backups are disabled.
func useTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{
		Version:        1,
		DefaultEngines: []string{"claude", "codex", "gemini"},
		Engines:        map[string]config.EngineOverride{},
		Backup:         config.BackupSettings{Enabled: false, Retention: 5},
	}
	for _, name := range []string{"claude", "codex", "gemini"} {
		cfg.Engines[name] = config.EngineOverride{ConfigDir: filepath.Join(base, name)}
	}

	prevCfg, prevProject := flags.GetConfig(), flags.GetProjectFlag()
	flags.SetConfig(cfg)
	flags.SetProjectFlag(filepath.Join(base, "project"))
	t.Cleanup(func() {
		flags.SetConfig(prevCfg)
		flags.SetProjectFlag(prevProject)
	})
	return base
}

func writeTestFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
	// WriteFile applies the umask; set the exact mode under test.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatal(err)
	}
}
