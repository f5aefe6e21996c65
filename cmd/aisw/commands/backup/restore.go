package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/cli/prompt"
	"github.com/thoreinstein/aisw/internal/errors"
)

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false,
		"restore without asking for confirmation")
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore from a backup",
	Long: `Restore engine files from a backup.

The --engine flag is required and must name exactly one engine, so a
backup is never restored onto the wrong engine. Without a backup id the
available backups are offered newest first.

All files in the backup are checked against their recorded hashes and put
back at their original locations with their original permissions. Existing
files are overwritten.`,
	Example: `  # Choose a Claude backup to restore
  aisw backup restore --engine claude

  # Restore a specific backup without confirmation
  aisw backup restore 20260123T100712 --engine claude --yes

  See Also:
    aisw backup list   - List available backups
    aisw backup create - Create a new backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	return runRestoreWithIO(cmd.Context(), os.Stdin, os.Stdout, args)
}

func runRestoreWithIO(ctx context.Context, in io.Reader, w io.Writer, args []string) error {
	if len(flags.GetEngineFlag()) == 0 {
		return errors.NewUserError(errors.New("--engine is required for restore"),
			"Run 'aisw backup list' to see which engines have backups")
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}
	if len(e.engines) != 1 {
		return errors.NewUserError(errors.New("restore requires exactly one engine"), "")
	}
	eng := e.engines[0]
	selector := prompt.NewSelectorWithIO(in, w)

	var backupID string
	if len(args) > 0 {
		backupID = args[0]
	} else {
		list, err := e.mgr.List(eng.Name())
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Newf("no backups found for %s", eng.DisplayName()), "")
			}
			return errors.Wrap(err, "listing backups")
		}
		options := make([]prompt.Option, len(list))
		for i, m := range list {
			options[i] = prompt.Option{
				Label:  m.ID,
				Detail: fmt.Sprintf("%s, %d files", m.CreatedAt.Local().Format("2006-01-02 15:04:05"), len(m.Files)),
			}
		}
		idx, err := selector.Select(fmt.Sprintf("Backups for %s", eng.DisplayName()), options)
		if err != nil {
			return errors.Wrap(err, "choosing backup")
		}
		backupID = list[idx].ID
	}

	manifest, err := e.mgr.Get(eng.Name(), backupID)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "getting backup %s", backupID),
			"Run 'aisw backup list' to see available backups")
	}

	for _, f := range manifest.Files {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprint(f.OriginalPath))
	}
	if !restoreYes {
		ok, err := selector.Confirm(fmt.Sprintf("Overwrite %d file(s) from backup %s?", len(manifest.Files), backupID))
		if err != nil {
			return errors.Wrap(err, "confirming restore")
		}
		if !ok {
			return errors.ErrAborted
		}
	}

	if err := e.mgr.Restore(eng.Name(), backupID); err != nil {
		return errors.Wrap(err, "restoring backup")
	}

	okColor.Fprintf(w, "✓ Restored %s files from backup %s\n", eng.DisplayName(), backupID)
	return nil
}
