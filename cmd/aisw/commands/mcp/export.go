package mcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/mcp/parser"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to file instead of standard output")
	flags.AddScopeFlag(exportCmd)
	Cmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Export MCP servers to a JSON file",
	Long: `Export the MCP servers of one engine as {"mcpServers": {...}} JSON.

Without ids every server is exported. Secrets are written as stored, so
treat the output like the engine file itself. Files written with --output
are created with owner-only permissions.`,
	Example: `  # Print Claude's servers
  aisw mcp export --engine claude

  # Save two Codex servers to a file
  aisw mcp export github linear --engine codex -o servers.json

  See Also:
    aisw mcp import   - Import servers from a file`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	return runExportWithWriter(cmd.Context(), os.Stdout, args)
}

func runExportWithWriter(ctx context.Context, w io.Writer, ids []string) error {
	t, err := singleTarget(ctx)
	if err != nil {
		return err
	}
	servers, err := t.servers.Servers(ctx)
	if err != nil {
		return errors.Wrapf(err, "listing MCP servers for %s", t.engine.Name())
	}

	if len(ids) > 0 {
		selected := make(map[string]*mcp.Spec, len(ids))
		for _, id := range ids {
			s, ok := servers[id]
			if !ok {
				return errors.NewUserError(
					errors.Wrapf(mcp.ErrServerNotFound, "%q on %s", id, t.engine.DisplayName()),
					"Run 'aisw mcp list' to see configured servers")
			}
			selected[id] = s
		}
		servers = selected
	}

	if exportOutput != "" {
		if err := parser.WriteFile(exportOutput, servers); err != nil {
			return err
		}
		fmt.Fprintln(w, okColor.Sprintf("✓ Exported %d server(s) from %s to %s",
			len(servers), t.engine.DisplayName(), exportOutput))
		return nil
	}

	data, err := parser.Write(servers)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}
