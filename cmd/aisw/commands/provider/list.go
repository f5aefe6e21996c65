package provider

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/preset"
)

var (
	listCategory string
	listJSON     bool
	listYAML     bool
)

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "",
		"only list presets of this category (official, regional-official, aggregator, third-party, custom)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List provider presets",
	Long:  `List the built-in provider presets grouped by category.`,
	Example: `  # List every preset
  aisw provider list

  # List aggregators only
  aisw provider list --category aggregator

  See Also:
    aisw provider show     - Show a preset
    aisw provider apply    - Switch to a preset`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runListWithWriter(os.Stdout)
	},
}

func runListWithWriter(w io.Writer) error {
	format, err := cli.ParseFormat(listJSON, listYAML)
	if err != nil {
		return err
	}

	categories := preset.Categories()
	if listCategory != "" {
		c := preset.Category(listCategory)
		if len(preset.ByCategory(c)) == 0 {
			return errors.NewUserError(
				errors.Newf("unknown category %q", listCategory),
				"Valid categories: official, regional-official, aggregator, third-party, custom")
		}
		categories = []preset.Category{c}
	}

	if format != cli.FormatText {
		var views []presetView
		for _, c := range categories {
			for _, p := range preset.ByCategory(c) {
				views = append(views, newPresetView(p, false))
			}
		}
		return cli.Encode(w, format, views)
	}

	for i, c := range categories {
		presets := preset.ByCategory(c)
		if len(presets) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		headerColor.Fprintln(w, categoryTitle(c))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, p := range presets {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.ID, p.DisplayName, endpoint(p.Config), dimColor.Sprint(badges(p)))
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "flushing tabwriter")
		}
	}
	return nil
}
