package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/redact"
)

var (
	listJSON        bool
	listYAML        bool
	listShowSecrets bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.Flags().BoolVar(&listShowSecrets, "show-secrets", false, "Reveal masked secrets in env values and headers")
	flags.AddScopeFlag(listCmd)
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured MCP servers",
	Long: `List all configured MCP servers grouped by engine.

By default, lists MCP servers for all detected engines. Use the --engine flag
to limit to specific engines. Entries an engine file holds but aisw cannot
read are skipped; run 'aisw doctor' to see them.

Environment variables and headers that look like secrets (TOKEN, KEY,
SECRET, PASSWORD, AUTH, CREDENTIAL, API_KEY) are masked by default. Use
--show-secrets to reveal them.`,
	Example: `  # List all MCP servers
  aisw mcp list

  # List MCP servers for a specific engine
  aisw mcp list --engine claude

  # List the servers of the current project
  aisw mcp list --scope project

  # Output as JSON
  aisw mcp list --json

  See Also:
    aisw mcp show     - Show details of a specific server
    aisw mcp add      - Add a new server`,
	RunE: runList,
}

// listEngineOutput represents a single engine's MCP servers in JSON output.
type listEngineOutput struct {
	Engine  string       `json:"engine" yaml:"engine"`
	Path    string       `json:"path" yaml:"path"`
	Servers []serverView `json:"servers" yaml:"servers"`
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd.Context(), os.Stdout)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(ctx context.Context, w io.Writer) error {
	format, err := cli.ParseFormat(listJSON, listYAML)
	if err != nil {
		return err
	}
	targets, err := newTargets(ctx)
	if err != nil {
		return err
	}

	if format != cli.FormatText {
		return outputStructured(ctx, w, format, targets)
	}
	return outputTabular(ctx, w, targets)
}

// outputStructured outputs MCP servers in JSON or YAML format.
func outputStructured(ctx context.Context, w io.Writer, format cli.Format, targets []target) error {
	output := make([]listEngineOutput, 0, len(targets))

	for _, t := range targets {
		servers, err := t.servers.Servers(ctx)
		if err != nil {
			return errors.Wrapf(err, "listing MCP servers for %s", t.engine.Name())
		}

		views := make([]serverView, 0, len(servers))
		for _, id := range sortedIDs(servers) {
			views = append(views, newServerView(id, servers[id], listShowSecrets))
		}
		output = append(output, listEngineOutput{
			Engine:  t.engine.Name(),
			Path:    t.engine.MCPConfigPath(),
			Servers: views,
		})
	}

	return cli.Encode(w, format, output)
}

// outputTabular outputs MCP servers in tabular format grouped by engine.
func outputTabular(ctx context.Context, w io.Writer, targets []target) error {
	hasServers := false

	for i, t := range targets {
		servers, err := t.servers.Servers(ctx)
		if err != nil {
			return errors.Wrapf(err, "listing MCP servers for %s", t.engine.Name())
		}

		if len(servers) > 0 {
			hasServers = true
		}

		// Add blank line between engines (but not before first)
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s %s\n",
			headerColor.Sprintf("Engine: %s", t.engine.DisplayName()),
			dimColor.Sprintf("(%s)", t.engine.MCPConfigPath()))

		if len(servers) == 0 {
			fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(no MCP servers configured)"))
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			labelColor.Sprint("ID"), labelColor.Sprint("TYPE"), labelColor.Sprint("COMMAND/URL"))

		for _, id := range sortedIDs(servers) {
			s := servers[id]
			endpoint := s.Endpoint()
			if s.Kind().IsRemote() && !listShowSecrets {
				endpoint = redact.URL(endpoint)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n",
				okColor.Sprint(id),
				s.Kind(),
				truncate(endpoint, 60))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "flushing tabwriter")
		}
	}

	if !hasServers {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No MCP servers configured")
	}

	return nil
}
