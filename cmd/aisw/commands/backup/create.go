package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/errors"
)

func init() {
	flags.AddScopeFlag(createCmd)
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a manual backup",
	Long: `Create a backup of the engine files aisw edits: the MCP server file of
the selected scope, and for Codex also auth.json.

Backups are created automatically before aisw changes a file. This command
creates additional backups manually, for example before editing a file by
hand.`,
	Example: `  # Create backup for all engines
  aisw backup create

  # Create backup of the Claude project file
  aisw backup create --engine claude --scope project

  See Also:
    aisw backup list    - List available backups
    aisw backup restore - Restore from a backup`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return runCreateWithWriter(cmd.Context(), os.Stdout)
}

func runCreateWithWriter(ctx context.Context, w io.Writer) error {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	created := 0
	for _, eng := range e.engines {
		paths, err := e.reg.BackupPaths(eng.Name())
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			warnColor.Fprintf(w, "%s: no paths configured for backup\n", eng.DisplayName())
			continue
		}

		manifest, err := e.mgr.Backup(eng.Name(), paths)
		if err != nil {
			if errors.Is(err, backup.ErrNothingToBackUp) {
				warnColor.Fprintf(w, "%s: no files found to back up\n", eng.DisplayName())
				continue
			}
			return errors.Wrapf(err, "backing up %s", eng.Name())
		}

		okColor.Fprintf(w, "✓ %s: created backup %s (%d files)\n", eng.DisplayName(), manifest.ID, len(manifest.Files))
		created++
	}

	if created == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No backups created. Engine files may not exist yet.")
	}

	return nil
}
