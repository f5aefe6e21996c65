package provider

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/errors"
)

func init() {
	Cmd.AddCommand(setModelCmd, setURLCmd)
}

var setModelCmd = &cobra.Command{
	Use:   "set-model <model>",
	Short: "Change the model of the live provider",
	Long: `Change the top-level model in config.toml. Models set inside MCP server
tables or profiles are left alone.`,
	Example: `  aisw provider set-model gpt-5-codex`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetModelWithWriter(cmd.Context(), os.Stdout, args[0])
	},
}

var setURLCmd = &cobra.Command{
	Use:   "set-url <base-url>",
	Short: "Change the base URL of the live provider",
	Long: `Change the base_url of the live provider in config.toml. The official
provider has no base_url; apply a preset first to switch away from it.`,
	Example: `  aisw provider set-url https://api.moonshot.ai/v1`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetURLWithWriter(cmd.Context(), os.Stdout, args[0])
	},
}

func runSetModelWithWriter(ctx context.Context, w io.Writer, model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return errors.NewUserError(errors.New("model must not be empty"), "")
	}
	mgr, err := newManager(ctx)
	if err != nil {
		return err
	}
	if err := mgr.SetModel(ctx, model); err != nil {
		return errors.NewUserError(err, "Run 'aisw provider current' to inspect the live provider")
	}
	fmt.Fprintf(w, "✓ Model set to %s\n", model)
	return nil
}

func runSetURLWithWriter(ctx context.Context, w io.Writer, raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewUserError(errors.Newf("invalid base URL %q", raw), "Use an http or https URL")
	}
	mgr, err := newManager(ctx)
	if err != nil {
		return err
	}
	if err := mgr.SetBaseURL(ctx, raw); err != nil {
		return errors.NewUserError(err, "Apply a preset first with 'aisw provider apply'")
	}
	fmt.Fprintf(w, "✓ Base URL set to %s\n", raw)
	return nil
}
