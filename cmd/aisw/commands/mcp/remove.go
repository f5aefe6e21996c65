package mcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/errors"
)

func init() {
	flags.AddScopeFlag(removeCmd)
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove MCP server configurations",
	Long: `Remove one or more MCP servers from the targeted engine(s).

Each server is removed from every targeted engine that has it. It is an
error when a server exists on none of them.`,
	Example: `  # Remove a server from every engine
  aisw mcp remove github

  # Remove two servers from Codex only
  aisw mcp remove github linear --engine codex

  See Also:
    aisw mcp list     - List configured servers
    aisw mcp add      - Add a server`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return runRemoveWithWriter(cmd.Context(), os.Stdout, args)
}

func runRemoveWithWriter(ctx context.Context, w io.Writer, ids []string) error {
	targets, err := newTargets(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		found, err := withServer(ctx, targets, id)
		if err != nil {
			return err
		}
		for _, t := range found {
			if err := t.servers.Delete(ctx, id); err != nil {
				return errors.Wrapf(err, "removing from %s", t.engine.DisplayName())
			}
			fmt.Fprintln(w, okColor.Sprintf("✓ Removed %q from %s", id, t.engine.DisplayName()))
		}
	}
	return nil
}
