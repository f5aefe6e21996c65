package provider

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/cli"
)

var (
	showJSON bool
	showYAML bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Output in YAML format")
	Cmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a provider preset",
	Long: `Show the credential template and config.toml fragment a preset writes.

Credential values in presets are placeholders; apply fills them from
--api-key.`,
	Example: `  aisw provider show openrouter
  aisw provider show kimi --yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runShowWithWriter(os.Stdout, args[0])
	},
}

func runShowWithWriter(w io.Writer, id string) error {
	format, err := cli.ParseFormat(showJSON, showYAML)
	if err != nil {
		return err
	}
	p, err := lookup(id)
	if err != nil {
		return err
	}

	if format != cli.FormatText {
		return cli.Encode(w, format, newPresetView(p, true))
	}

	fmt.Fprintf(w, "%s %s\n", headerColor.Sprint(p.DisplayName), dimColor.Sprint(badges(p)))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("ID:"), p.ID)
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Category:"), categoryTitle(p.Category))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Endpoint:"), endpoint(p.Config))
	if p.WebsiteURL != "" {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Website:"), p.WebsiteURL)
	}
	if p.APIKeyURL != "" {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("API keys:"), p.APIKeyURL)
	}
	if len(p.EndpointCandidates) > 0 {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Alternatives:"), strings.Join(p.EndpointCandidates, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", labelColor.Sprint("auth.json:"))
	writeCredential(w, p.Credential, false)
	fmt.Fprintf(w, "\n%s\n", labelColor.Sprint("config.toml:"))
	writeFragment(w, p.Config)
	return nil
}
