package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/errors"
)

var pruneKeep int

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", backup.DefaultRetentionCount,
		"Number of backups to retain per engine")
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove old backups beyond the retention count.

By default, keeps the 5 most recent backups per engine and removes older
ones. Use the --keep flag to specify a different retention count.`,
	Example: `  # Prune all engines, keeping default (5) backups each
  aisw backup prune

  # Keep only the 3 most recent backups
  aisw backup prune --keep 3

  # Remove all Gemini backups
  aisw backup prune --engine gemini --keep 0

  See Also:
    aisw backup list   - List available backups
    aisw backup create - Create a new backup`,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, _ []string) error {
	return runPruneWithWriter(cmd.Context(), os.Stdout)
}

func runPruneWithWriter(ctx context.Context, w io.Writer) error {
	if pruneKeep < 0 {
		return errors.NewUserError(errors.New("--keep must be non-negative"), "")
	}

	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	pruned := 0
	for _, eng := range e.engines {
		list, err := manifests(e.mgr, eng.Name())
		if err != nil {
			return err
		}

		toRemove := len(list) - pruneKeep
		if toRemove <= 0 {
			continue
		}

		if err := e.mgr.Prune(eng.Name(), pruneKeep); err != nil {
			return errors.Wrapf(err, "pruning backups for %s", eng.Name())
		}

		okColor.Fprintf(w, "✓ %s: removed %d old backup(s)\n", eng.DisplayName(), toRemove)
		pruned += toRemove
	}

	if pruned == 0 {
		fmt.Fprintln(w, "No backups to prune")
	} else {
		fmt.Fprintf(w, "\nTotal: removed %d backup(s)\n", pruned)
	}

	return nil
}
