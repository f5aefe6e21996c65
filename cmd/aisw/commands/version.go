package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd"
	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit, and build date of aisw, the Go version it was
built with, and which engines are installed.`,
	Run: func(c *cobra.Command, _ []string) {
		reg := platform.NewRegistry(platform.WithConfig(flags.GetConfig()))
		writeVersion(c.OutOrStdout(), reg)
	},
}

func writeVersion(w io.Writer, reg *platform.Registry) {
	fmt.Fprintf(w, "aisw version %s\n", cmd.Version)
	fmt.Fprintf(w, "  commit:    %s\n", cmd.Commit)
	fmt.Fprintf(w, "  built:     %s\n", cmd.Date)
	fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
	fmt.Fprintln(w, "  engines:")
	for _, d := range reg.Detect() {
		status := "installed"
		switch d.Status {
		case platform.StatusNotInstalled:
			status = "not installed"
		case platform.StatusPartial:
			status = "installed, not configured"
		}
		fmt.Fprintf(w, "    %-8s %s\n", d.Name+":", status)
	}
}
