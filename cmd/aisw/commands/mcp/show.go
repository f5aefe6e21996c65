package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/mcp"
)

var (
	showJSON        bool
	showYAML        bool
	showShowSecrets bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Output as YAML")
	showCmd.Flags().BoolVar(&showShowSecrets, "show-secrets", false, "Reveal masked secrets in environment variables and headers")
	flags.AddScopeFlag(showCmd)
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display MCP server details",
	Long: `Display detailed information about an MCP server configuration.

Searches for the server across all detected engines (or only the specified
--engine). Shows transport, command, args, environment variables, headers
and any engine-specific fields aisw keeps untouched. Highlights engines
whose definitions differ.

Environment variables and headers are masked by default to protect secrets.
Use --show-secrets to reveal the full values.`,
	Example: `  # Show details of a server
  aisw mcp show github

  # Show details including secrets
  aisw mcp show github --show-secrets

  # Output as JSON
  aisw mcp show github --json

  See Also:
    aisw mcp list     - List all servers
    aisw mcp edit     - Edit this server`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

// showEngine is one engine's definition in JSON output.
type showEngine struct {
	Engine string     `json:"engine" yaml:"engine"`
	Server serverView `json:"server" yaml:"server"`
}

// showOutput is the JSON output structure.
type showOutput struct {
	ID        string       `json:"id" yaml:"id"`
	Engines   []showEngine `json:"engines" yaml:"engines"`
	Identical bool         `json:"identical" yaml:"identical"`
}

func runShow(cmd *cobra.Command, args []string) error {
	return runShowWithWriter(cmd.Context(), os.Stdout, args[0])
}

func runShowWithWriter(ctx context.Context, w io.Writer, id string) error {
	format, err := cli.ParseFormat(showJSON, showYAML)
	if err != nil {
		return err
	}
	targets, err := newTargets(ctx)
	if err != nil {
		return err
	}
	found, err := withServer(ctx, targets, id)
	if err != nil {
		return err
	}

	specs := make([]*mcp.Spec, len(found))
	for i, t := range found {
		if specs[i], err = t.servers.Get(ctx, id); err != nil {
			return err
		}
	}
	identical := allEqual(specs)

	if format != cli.FormatText {
		out := showOutput{ID: id, Identical: identical}
		for i, t := range found {
			out.Engines = append(out.Engines, showEngine{
				Engine: t.engine.Name(),
				Server: newServerView(id, specs[i], showShowSecrets),
			})
		}
		return cli.Encode(w, format, out)
	}

	fmt.Fprintln(w, labelColor.Sprintf("Server: %s", id))
	if identical && len(found) > 1 {
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = t.engine.DisplayName()
		}
		fmt.Fprintln(w, engineColor.Sprintf("Engines: %s", strings.Join(names, ", ")))
		writeDetail(w, specs[0], showShowSecrets)
		return nil
	}

	for i, t := range found {
		fmt.Fprintf(w, "\n%s\n", engineColor.Sprint(t.engine.DisplayName()))
		writeDetail(w, specs[i], showShowSecrets)
	}
	if !identical {
		fmt.Fprintf(w, "\n%s\n", warnColor.Sprint("Definitions differ between engines."))
	}
	return nil
}

func allEqual(specs []*mcp.Spec) bool {
	for _, s := range specs[1:] {
		if !specs[0].Equal(s) {
			return false
		}
	}
	return true
}
