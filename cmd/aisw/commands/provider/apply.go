package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/cli/prompt"
	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/fragment"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/preset"
)

var (
	applyAPIKey  string
	applyBaseURL string
	applyModel   string
	applyDryRun  bool
)

func init() {
	applyCmd.Flags().StringVar(&applyAPIKey, "api-key", "",
		"API key stored in auth.json (default: $AISW_API_KEY)")
	applyCmd.Flags().StringVar(&applyBaseURL, "base-url", "",
		"override the preset base URL")
	applyCmd.Flags().StringVar(&applyModel, "model", "",
		"override the preset model")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false,
		"print what would be written without changing any file")
	Cmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:     "apply [id]",
	Aliases: []string{"use", "switch"},
	Short:   "Switch Codex to a provider preset",
	Long: `Write a preset's credential to auth.json and its provider fragment to
config.toml. MCP servers and project trust settings already in config.toml
are kept. Without an id, an interactive picker is shown on a terminal.

The custom preset is a template and requires --base-url. Both files are
backed up before they are replaced unless backups are disabled.`,
	Example: `  # Pick interactively
  aisw provider apply

  # Switch to OpenRouter
  aisw provider apply openrouter --api-key sk-or-...

  # Point at your own gateway
  aisw provider apply custom --base-url https://llm.internal/v1 --model gpt-5-codex

  # Preview the result
  aisw provider apply kimi --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

// interactive reports whether a picker can be shown. Tests replace it.
var interactive = func() bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(os.Stdout)
}

// pick chooses a preset from presets. Tests replace it.
var pick = func(presets []*preset.Preset) (int, error) {
	options := make([]prompt.Option, len(presets))
	for i, p := range presets {
		options[i] = prompt.Option{Label: p.DisplayName, Detail: p.ID}
	}
	return prompt.Fuzzy(options, func(i int) string { return previewPreset(presets[i]) })
}

func runApply(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	return runApplyWithWriter(cmd.Context(), os.Stdout, id)
}

func runApplyWithWriter(ctx context.Context, w io.Writer, id string) error {
	p, err := choosePreset(id)
	if err != nil {
		return err
	}

	apiKey := applyAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("AISW_API_KEY")
	}
	if p.IsCustomTemplate && applyBaseURL == "" {
		return errors.NewUserError(
			errors.Newf("preset %q is a template", p.ID),
			"Pass --base-url with the endpoint of your provider")
	}

	if strings.TrimSpace(p.Config) == "" && (applyBaseURL != "" || applyModel != "") {
		return errors.NewUserError(
			errors.Newf("preset %q uses the Codex defaults and has no base_url or model to override", p.ID),
			"Drop --base-url and --model, or pick the custom preset")
	}

	payload, frag := p.Materialize(preset.Overrides{APIKey: apiKey, BaseURL: applyBaseURL, Model: applyModel})
	if err := fragment.Validate(frag); err != nil {
		return errors.NewUserError(err, "Check the --base-url and --model values")
	}

	if applyDryRun {
		fmt.Fprintf(w, "%s\n", headerColor.Sprintf("Would apply %s", p.DisplayName))
		fmt.Fprintf(w, "\n%s\n", labelColor.Sprint("auth.json:"))
		writeCredential(w, payload, false)
		fmt.Fprintf(w, "\n%s\n", labelColor.Sprint("config.toml (provider part):"))
		writeFragment(w, frag)
		return nil
	}

	mgr, err := newManager(ctx)
	if err != nil {
		return err
	}
	if err := mgr.Apply(ctx, payload, frag); err != nil {
		return errors.Wrapf(err, "applying provider %q", p.ID)
	}

	fmt.Fprintf(w, "✓ Codex now uses %s (%s)\n", p.DisplayName, endpoint(frag))
	if !p.IsOfficial && credential.ExtractAPIKey(payload) == "" {
		fmt.Fprintln(w, dimColor.Sprint("  No API key was set; pass --api-key or set $AISW_API_KEY"))
	}
	return nil
}

func choosePreset(id string) (*preset.Preset, error) {
	if id != "" {
		return lookup(id)
	}
	if !interactive() {
		return nil, errors.NewUserError(
			errors.New("no preset given"),
			"Pass a preset id, see 'aisw provider list'")
	}
	presets := preset.All()
	i, err := pick(presets)
	if err != nil {
		return nil, err
	}
	return presets[i], nil
}
