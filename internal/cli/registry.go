package cli

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/config"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/platform"
)

// Settings are the global flag values a command needs to reach the
// engine files.
type Settings struct {
	Config      *config.Config
	Scope       string
	ProjectRoot string
	Logger      *slog.Logger

	// BackupDir overrides the backup location. Empty uses paths.BackupDir.
	BackupDir string
}

// NewBackupManager returns the backup manager configured by cfg.
func NewBackupManager(cfg *config.Config, dir string) *backup.Manager {
	var opts []backup.Option
	if dir != "" {
		opts = append(opts, backup.WithBackupDir(dir))
	}
	if cfg != nil && cfg.Backup.Retention > 0 {
		opts = append(opts, backup.WithRetentionCount(cfg.Backup.Retention))
	}
	return backup.NewManager(opts...)
}

// NewRegistry builds the engine registry for s. The project root defaults
// to the working directory. Engine files are snapshotted before their
// first change unless backups are disabled.
func NewRegistry(s Settings) (*platform.Registry, error) {
	scopes, err := ParseScope(s.Scope)
	if err != nil {
		return nil, err
	}

	root := s.ProjectRoot
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, errors.NewSystemError(errors.Wrap(err, "resolving project root"), "")
		}
	}

	opts := []platform.Option{
		platform.WithConfig(s.Config),
		platform.WithLogger(s.Logger),
		platform.WithClaudeScope(scopes.Claude),
		platform.WithGeminiScope(scopes.Gemini),
		platform.WithProjectRoot(root),
	}
	if s.Config == nil || s.Config.Backup.Enabled {
		opts = append(opts, platform.WithBackup(NewBackupManager(s.Config, s.BackupDir)))
	}
	return platform.NewRegistry(opts...), nil
}
