// Package backup provides CLI commands for managing engine file backups.
package backup

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/platform"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	dimColor    = color.New(color.FgHiBlack)
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage engine file backups",
	Long: `Manage backups of the files aisw edits.

Before aisw first changes an engine file in a run, it copies the file into
a backup. This command group lists, creates, restores and prunes those
backups. Backups are stored per engine under the aisw data directory and
the newest are kept according to backup.retention in the config.`,
	Example: `  # List all backups
  aisw backup list

  # List backups for a specific engine
  aisw backup list --engine codex

  # Pick a Codex backup to restore
  aisw backup restore --engine codex

  # Restore a specific backup
  aisw backup restore 20260123T100712 --engine claude

  # Create a manual backup
  aisw backup create

  # Remove old backups, keeping the 3 most recent
  aisw backup prune --keep 3

  See Also:
    aisw backup list    - List available backups
    aisw backup restore - Restore from a backup
    aisw backup create  - Manually create a backup
    aisw backup prune   - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// env is the state every backup command works against.
type env struct {
	reg     *platform.Registry
	engines []platform.Engine
	mgr     *backup.Manager
}

// newEnv resolves the targeted engines and the backup store. Tests replace it.
var newEnv = func(ctx context.Context) (*env, error) {
	s := flags.Settings(ctx)
	reg, err := cli.NewRegistry(s)
	if err != nil {
		return nil, err
	}
	engines, err := cli.ResolveEngines(reg, flags.GetEngineFlag(), flags.DefaultEngines())
	if err != nil {
		return nil, err
	}
	return &env{reg: reg, engines: engines, mgr: cli.NewBackupManager(s.Config, s.BackupDir)}, nil
}
