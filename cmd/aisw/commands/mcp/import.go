package mcp

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/mcp/parser"
	"github.com/thoreinstein/aisw/internal/mcp/validator"
)

var (
	importForce  bool
	importDryRun bool
)

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false,
		"replace servers that already exist")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false,
		"validate and report without writing")
	flags.AddScopeFlag(importCmd)
	Cmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import MCP servers from a JSON file",
	Long: `Import MCP servers from a JSON file into the targeted engine(s).

The file uses the common {"mcpServers": {...}} layout understood by most
MCP clients; a bare object of servers is accepted too. Use "-" to read
from standard input. Every server is validated before anything is
written, and all problems are reported at once.

Servers that already exist on an engine are skipped unless --force is
given.`,
	Example: `  # Import a Claude Desktop style file into every engine
  aisw mcp import ~/Downloads/servers.json

  # Preview an import into Codex
  aisw mcp import servers.json --engine codex --dry-run

  # Copy servers between engines
  aisw mcp export --engine claude | aisw mcp import - --engine gemini

  See Also:
    aisw mcp export   - Export servers to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	return runImportWithWriter(cmd.Context(), os.Stdout, os.Stdin, args[0])
}

func runImportWithWriter(ctx context.Context, w io.Writer, stdin io.Reader, path string) error {
	drafts, err := readBundle(stdin, path)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.NewUserError(err, "Check the path, or pass - to read standard input")
	}
	if err != nil {
		return errors.NewUserError(err, "Check that the file is a JSON object of MCP servers")
	}

	issues := validator.New().Validate(drafts)
	for _, issue := range issues {
		c := warnColor
		if issue.Severity == validator.SeverityError {
			c = errorColor
		}
		fmt.Fprintln(w, c.Sprint(issue.Error()))
	}
	if validator.HasErrors(issues) {
		return errors.NewUserError(
			errors.Newf("%d server definition(s) are invalid", len(validator.Errors(issues))),
			"Fix the reported fields and retry")
	}

	specs := make(map[string]*mcp.Spec, len(drafts))
	for id, d := range drafts {
		if specs[id], err = d.Spec(); err != nil {
			return errors.Wrapf(err, "server %q", id)
		}
	}

	targets, err := newTargets(ctx)
	if err != nil {
		return err
	}

	for _, t := range targets {
		written, skipped := 0, 0
		for _, id := range sortedIDs(specs) {
			if !importForce {
				if _, err := t.servers.Get(ctx, id); err == nil {
					fmt.Fprintf(w, "  %s\n", dimColor.Sprintf("%s: %q exists, skipped", t.engine.DisplayName(), id))
					skipped++
					continue
				} else if !errors.Is(err, mcp.ErrServerNotFound) {
					return errors.Wrapf(err, "reading %s servers", t.engine.DisplayName())
				}
			}
			if !importDryRun {
				if err := t.servers.Upsert(ctx, id, specs[id]); err != nil {
					return errors.Wrapf(err, "importing %q into %s", id, t.engine.DisplayName())
				}
			}
			written++
		}

		verb := "imported"
		if importDryRun {
			verb = "would import"
		}
		fmt.Fprintln(w, okColor.Sprintf("✓ %s: %s %d server(s), skipped %d",
			t.engine.DisplayName(), verb, written, skipped))
	}
	return nil
}

func readBundle(stdin io.Reader, path string) (map[string]*mcp.Draft, error) {
	if path != "-" {
		return parser.ParseFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "reading standard input")
	}
	return parser.Parse(data)
}
