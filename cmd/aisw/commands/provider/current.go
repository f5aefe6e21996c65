package provider

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/preset"
	"github.com/thoreinstein/aisw/internal/redact"
)

var (
	currentJSON        bool
	currentYAML        bool
	currentShowSecrets bool
)

func init() {
	currentCmd.Flags().BoolVar(&currentJSON, "json", false, "Output in JSON format")
	currentCmd.Flags().BoolVar(&currentYAML, "yaml", false, "Output in YAML format")
	currentCmd.Flags().BoolVar(&currentShowSecrets, "show-secrets", false, "Reveal the API key")
	Cmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the live Codex provider",
	Long: `Show the provider Codex CLI is configured for, read from config.toml
and auth.json. The matching preset is found by base URL; a live setup that
matches no preset is reported as custom.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCurrentWithWriter(cmd.Context(), os.Stdout)
	},
}

// currentOutput is the structured form of the live provider.
type currentOutput struct {
	Preset  string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	Model   string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey  string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

func runCurrentWithWriter(ctx context.Context, w io.Writer) error {
	format, err := cli.ParseFormat(currentJSON, currentYAML)
	if err != nil {
		return err
	}
	mgr, err := newManager(ctx)
	if err != nil {
		return err
	}
	live, err := mgr.Current(ctx)
	if err != nil {
		return err
	}

	out := currentOutput{Name: "Custom", BaseURL: live.BaseURL, Model: live.Model, APIKey: live.APIKey}
	if p, ok := preset.MatchBaseURL(live.BaseURL); ok {
		out.Preset = p.ID
		out.Name = p.DisplayName
	}
	if !currentShowSecrets && out.APIKey != "" {
		out.APIKey = redact.Value(out.APIKey)
	}

	if format != cli.FormatText {
		return cli.Encode(w, format, out)
	}

	name := out.Name
	if out.Preset != "" {
		name += " " + dimColor.Sprintf("(%s)", out.Preset)
	}
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Provider:"), name)
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Base URL:"), valueOr(out.BaseURL, "engine default"))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Model:"), valueOr(out.Model, "engine default"))
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("API key:"), valueOr(out.APIKey, "not set"))
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return dimColor.Sprint(fallback)
	}
	return v
}
