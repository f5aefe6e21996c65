// Package provider implements the aisw provider commands, which switch the
// model provider Codex CLI talks to.
package provider

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/platform/codex"
	"github.com/thoreinstein/aisw/internal/preset"
)

// Cmd is the parent command for provider operations.
var Cmd = &cobra.Command{
	Use:     "provider",
	Aliases: []string{"providers"},
	Short:   "Switch the Codex provider",
	Long: `Switch the model provider used by Codex CLI.

A provider is an auth.json credential plus the provider part of
config.toml. Presets cover the official OpenAI endpoint and a set of
compatible hosts; the custom preset is a template to fill in with
--base-url and --api-key. MCP servers and project trust settings in
config.toml are kept when switching.

Available subcommands:
  list       List provider presets
  show       Show a preset
  apply      Switch to a preset
  current    Show the live provider
  set-model  Change the live model
  set-url    Change the live base URL`,
}

// Manager is the live provider state the commands operate on.
type Manager interface {
	Current(ctx context.Context) (*codex.Live, error)
	Apply(ctx context.Context, payload credential.Payload, fragment string) error
	SetModel(ctx context.Context, model string) error
	SetBaseURL(ctx context.Context, baseURL string) error
}

// newManager returns the Codex provider manager. Tests replace it.
var newManager = func(ctx context.Context) (Manager, error) {
	reg, err := cli.NewRegistry(flags.Settings(ctx))
	if err != nil {
		return nil, err
	}
	return reg.Codex().Providers(), nil
}

// categoryTitles are the headings used when listing presets.
var categoryTitles = map[preset.Category]string{
	preset.CategoryOfficial:         "Official",
	preset.CategoryRegionalOfficial: "Regional official",
	preset.CategoryAggregator:       "Aggregators",
	preset.CategoryThirdParty:       "Third party",
	preset.CategoryCustom:           "Custom",
}

func categoryTitle(c preset.Category) string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return preset.CategoryLabel(c)
}

// lookup returns the preset with id or a user error listing the choices.
func lookup(id string) (*preset.Preset, error) {
	p, ok := preset.ByID(id)
	if !ok {
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "provider preset %q", id),
			"Run 'aisw provider list' to see available presets")
	}
	return p, nil
}
