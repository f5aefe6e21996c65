package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli"
	"github.com/thoreinstein/aisw/internal/doctor"
	"github.com/thoreinstein/aisw/internal/errors"
)

var (
	doctorJSON bool
	doctorYAML bool
	doctorFix  bool
)

var (
	passColor = color.New(color.FgGreen)
	infoColor = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorYAML, "yaml", false,
		"output results as YAML")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix file and directory permissions, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose engine configuration issues",
	Long: `Run diagnostic checks on the configuration files of every engine.

Checks that engines are installed, that their files are readable and have
safe permissions, that every file parses, that MCP servers are complete,
and that the Codex provider settings are consistent.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output
  --yaml      Machine-readable YAML output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Show problems
  aisw doctor

  # Show every check
  aisw doctor -v

  # Repair file permissions
  aisw doctor --fix

See Also: aisw backup, aisw config`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorYAML, quiet, verbosity > 0} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --yaml, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctorWithWriter(ctx context.Context, w io.Writer) error {
	reg, err := cli.NewRegistry(flags.Settings(ctx))
	if err != nil {
		return err
	}

	runner := doctor.NewRunner(doctor.DefaultChecks(reg)...)
	report := runner.Run(ctx)

	if doctorFix {
		fixed := applyFixes(w, runner)
		if fixed > 0 {
			// Checks keep state from their last run, so start over.
			runner = doctor.NewRunner(doctor.DefaultChecks(reg)...)
			report = runner.Run(ctx)
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// applyFixes runs every fixer that has work to do and reports each
// outcome. It returns the number of successful fixes.
func applyFixes(w io.Writer, runner *doctor.Runner) int {
	fixed := 0
	for _, check := range runner.Checks() {
		fixer, ok := check.(doctor.Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		for _, r := range fixer.Fix() {
			if r.Fixed {
				fixed++
			}
			if quiet || doctorJSON || doctorYAML {
				continue
			}
			if r.Fixed {
				fmt.Fprintf(w, "%s fixed %s: %s\n", passColor.Sprint("✓"), r.Path, r.Description)
			} else {
				fmt.Fprintf(w, "%s could not fix %s: %s\n", failColor.Sprint("✗"), r.Path, r.Description)
			}
		}
	}
	if fixed > 0 && !quiet && !doctorJSON && !doctorYAML {
		fmt.Fprintln(w)
	}
	return fixed
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if quiet {
		return nil
	}

	format, err := cli.ParseFormat(doctorJSON, doctorYAML)
	if err != nil {
		return err
	}
	if format != cli.FormatText {
		return cli.Encode(w, format, report)
	}

	outputDoctorText(w, report)
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) {
	// In normal mode, show only errors and warnings
	showAll := verbosity > 0

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
		if result.Fixable && problem && !doctorFix {
			fmt.Fprintln(w, "  run 'aisw doctor --fix' to repair")
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return passColor.Sprint("✓")
	case doctor.SeverityInfo:
		return infoColor.Sprint("ℹ")
	case doctor.SeverityWarning:
		return warnColor.Sprint("⚠")
	case doctor.SeverityError:
		return failColor.Sprint("✗")
	default:
		return "?"
	}
}
