package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
)

var (
	argsAppend []string
	argsInsert []string
	argsSet    []string
	argsRemove []int
	argsMove   []string
)

func init() {
	argsCmd.Flags().StringArrayVar(&argsAppend, "append", nil, "append an argument (repeatable)")
	argsCmd.Flags().StringArrayVar(&argsInsert, "insert", nil, "insert INDEX=VALUE before INDEX (repeatable)")
	argsCmd.Flags().StringArrayVar(&argsSet, "set", nil, "replace INDEX=VALUE (repeatable)")
	argsCmd.Flags().IntSliceVar(&argsRemove, "remove", nil, "remove the argument at INDEX (repeatable)")
	argsCmd.Flags().StringArrayVar(&argsMove, "move", nil, "move FROM:TO (repeatable)")
	flags.AddScopeFlag(argsCmd)
	Cmd.AddCommand(argsCmd)
}

var argsCmd = &cobra.Command{
	Use:   "args <id>",
	Short: "View or edit the arguments of a stdio server",
	Long: `View or edit the ordered argument list of a stdio server.

Indexes start at 0. Edits run in this order: set, insert, move, remove,
append. Each edit sees the list left by the previous one. An index outside
the list aborts the whole command before any engine file is written.

Without edit flags the arguments are listed with their indexes.`,
	Example: `  # Show arguments
  aisw mcp args github

  # Pin a package version
  aisw mcp args github --set 1=@modelcontextprotocol/server-github@1.2.0

  # Add a flag after the package name
  aisw mcp args github --insert 2=--read-only

  # Drop the first argument
  aisw mcp args github --remove 0

  See Also:
    aisw mcp env      - Edit environment variables and headers
    aisw mcp edit     - Edit the whole server`,
	Args: cobra.ExactArgs(1),
	RunE: runArgs,
}

// argEdit is one positional edit applied to an argument list.
type argEdit func(a *mcp.ArgList) error

func runArgs(cmd *cobra.Command, args []string) error {
	return runArgsWithWriter(cmd.Context(), os.Stdout, args[0])
}

func runArgsWithWriter(ctx context.Context, w io.Writer, id string) error {
	edits, err := parseArgEdits()
	if err != nil {
		return err
	}

	targets, err := newTargets(ctx)
	if err != nil {
		return err
	}
	found, err := withServer(ctx, targets, id)
	if err != nil {
		return err
	}

	type pending struct {
		t    target
		spec *mcp.Spec
	}
	var updates []pending

	for _, t := range found {
		spec, err := t.servers.Get(ctx, id)
		if err != nil {
			return err
		}
		st, ok := spec.Stdio()
		if !ok {
			return errors.NewUserError(
				errors.Newf("%q on %s is a %s server and has no arguments", id, t.engine.DisplayName(), spec.Kind()),
				"Use 'aisw mcp env --headers' to edit a remote server")
		}

		if len(edits) == 0 {
			fmt.Fprintf(w, "%s %s\n", engineColor.Sprint(t.engine.DisplayName()), st.Command)
			if len(st.Args) == 0 {
				fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(no arguments)"))
			}
			for i, a := range st.Args {
				fmt.Fprintf(w, "  [%d] %s\n", i, a)
			}
			continue
		}

		for _, edit := range edits {
			if err := edit(&st.Args); err != nil {
				return errors.NewUserError(errors.Wrapf(err, "%s", t.engine.DisplayName()),
					fmt.Sprintf("Run 'aisw mcp args %s' to see the current indexes", id))
			}
		}
		updated, err := mcp.NewStdio(*st)
		if err != nil {
			return errors.NewUserError(err, "")
		}
		updates = append(updates, pending{t: t, spec: updated.WithExtra(spec.Extra())})
	}

	for _, u := range updates {
		if err := u.t.servers.Upsert(ctx, id, u.spec); err != nil {
			return errors.Wrapf(err, "saving to %s", u.t.engine.DisplayName())
		}
		fmt.Fprintln(w, okColor.Sprintf("✓ Updated arguments of %q on %s", id, u.t.engine.DisplayName()))
	}
	return nil
}

// parseArgEdits turns the edit flags into edits in application order.
func parseArgEdits() ([]argEdit, error) {
	var edits []argEdit
	for _, raw := range argsSet {
		i, v, err := parseIndexed(raw, "=", "--set")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(a *mcp.ArgList) error { return a.Set(i, v) })
	}
	for _, raw := range argsInsert {
		i, v, err := parseIndexed(raw, "=", "--insert")
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(a *mcp.ArgList) error { return a.Insert(i, v) })
	}
	for _, raw := range argsMove {
		from, rest, err := parseIndexed(raw, ":", "--move")
		if err != nil {
			return nil, err
		}
		to, err := strconv.Atoi(rest)
		if err != nil {
			return nil, errors.NewUserError(errors.Newf("invalid --move %q: TO must be an index", raw), "")
		}
		edits = append(edits, func(a *mcp.ArgList) error { return a.Move(from, to) })
	}
	for _, i := range argsRemove {
		edits = append(edits, func(a *mcp.ArgList) error { return a.Remove(i) })
	}
	for _, v := range argsAppend {
		edits = append(edits, func(a *mcp.ArgList) error { a.Append(v); return nil })
	}
	return edits, nil
}

func parseIndexed(raw, sep, flagName string) (int, string, error) {
	idx, value, ok := strings.Cut(raw, sep)
	if !ok {
		return 0, "", errors.NewUserError(
			errors.Newf("invalid %s %q: expected INDEX%sVALUE", flagName, raw, sep), "")
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, "", errors.NewUserError(
			errors.Newf("invalid %s %q: %q is not an index", flagName, raw, idx), "")
	}
	return i, value, nil
}
