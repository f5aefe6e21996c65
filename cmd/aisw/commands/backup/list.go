package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/errors"
)

var (
	listJSON bool
	listYAML bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List all available backups grouped by engine.

By default, lists backups for all detected engines. Use the --engine flag
to limit to specific engines. Backups are shown newest first.`,
	Example: `  # List all backups
  aisw backup list

  # List backups for a specific engine
  aisw backup list --engine claude

  # Output as JSON
  aisw backup list --json

  See Also:
    aisw backup restore - Restore from a backup
    aisw backup create  - Create a new backup`,
	RunE: runList,
}

// listOutput represents the structured output for backup list.
type listOutput struct {
	Engine  string       `json:"engine" yaml:"engine"`
	Backups []infoOutput `json:"backups" yaml:"backups"`
}

// infoOutput represents a single backup in structured output.
type infoOutput struct {
	ID          string    `json:"id" yaml:"id"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	FileCount   int       `json:"file_count" yaml:"file_count"`
	Files       []string  `json:"files" yaml:"files"`
	ToolVersion string    `json:"tool_version" yaml:"tool_version"`
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd.Context(), os.Stdout)
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	format, err := cli.ParseFormat(listJSON, listYAML)
	if err != nil {
		return err
	}
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	if format != cli.FormatText {
		return outputListStructured(w, format, e)
	}
	return outputListTabular(w, e)
}

// manifests lists engine backups, treating none as an empty list.
func manifests(mgr *backup.Manager, engine string) ([]backup.Manifest, error) {
	list, err := mgr.List(engine)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return nil, errors.Wrapf(err, "listing backups for %s", engine)
	}
	return list, nil
}

func outputListStructured(w io.Writer, format cli.Format, e *env) error {
	output := make([]listOutput, 0, len(e.engines))

	for _, eng := range e.engines {
		list, err := manifests(e.mgr, eng.Name())
		if err != nil {
			return err
		}

		backups := make([]infoOutput, len(list))
		for i, m := range list {
			files := make([]string, len(m.Files))
			for j, f := range m.Files {
				files[j] = f.OriginalPath
			}
			backups[i] = infoOutput{
				ID:          m.ID,
				CreatedAt:   m.CreatedAt,
				FileCount:   len(m.Files),
				Files:       files,
				ToolVersion: m.ToolVersion,
			}
		}

		output = append(output, listOutput{
			Engine:  eng.Name(),
			Backups: backups,
		})
	}

	return cli.Encode(w, format, output)
}

func outputListTabular(w io.Writer, e *env) error {
	hasBackups := false

	for i, eng := range e.engines {
		list, err := manifests(e.mgr, eng.Name())
		if err != nil {
			return err
		}

		if len(list) > 0 {
			hasBackups = true
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, headerColor.Sprintf("Engine: %s", eng.DisplayName()))

		if len(list) == 0 {
			fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(no backups available)"))
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			labelColor.Sprint("ID"), labelColor.Sprint("CREATED"),
			labelColor.Sprint("FILES"), labelColor.Sprint("VERSION"))

		for _, m := range list {
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n",
				okColor.Sprint(m.ID),
				m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				len(m.Files),
				m.ToolVersion)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "flushing tabwriter")
		}
	}

	if !hasBackups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No backups available")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before aisw changes an engine file.")
		fmt.Fprintln(w, "You can also create a backup manually with: aisw backup create")
	}

	return nil
}
