package mcp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/redact"
)

var (
	envSet         []string
	envUnset       []string
	envRename      []string
	envHeaders     bool
	envShowSecrets bool
)

func init() {
	envCmd.Flags().StringArrayVar(&envSet, "set", nil,
		"set KEY=VALUE, keeping the position of an existing key (repeatable)")
	envCmd.Flags().StringArrayVar(&envUnset, "unset", nil,
		"remove KEY (repeatable)")
	envCmd.Flags().StringArrayVar(&envRename, "rename", nil,
		"rename OLD=NEW, keeping value and position (repeatable)")
	envCmd.Flags().BoolVar(&envHeaders, "headers", false,
		"edit the HTTP headers of a remote server instead of the environment")
	envCmd.Flags().BoolVar(&envShowSecrets, "show-secrets", false,
		"reveal masked values when listing")
	flags.AddScopeFlag(envCmd)
	Cmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:     "env <id>",
	Aliases: []string{"vars"},
	Short:   "View or edit server environment variables and headers",
	Long: `View or edit the environment variables of a stdio server, or the HTTP
headers of a remote server with --headers.

Without --set, --unset or --rename the current values are listed. Renames
run first, then sets, then unsets. Renaming keeps the value and the
position of the key; renaming onto an existing key is refused. The change
is applied to every targeted engine that has the server.`,
	Example: `  # List a server's environment
  aisw mcp env github

  # Rotate a token
  aisw mcp env github --set GITHUB_TOKEN=ghp_new

  # Rename a variable on Codex only
  aisw mcp env github --rename GH_TOKEN=GITHUB_TOKEN --engine codex

  # Add an auth header to a remote server
  aisw mcp env api --headers --set "Authorization=Bearer token"

  See Also:
    aisw mcp args     - Edit command arguments
    aisw mcp edit     - Edit the whole server`,
	Args: cobra.ExactArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	return runEnvWithWriter(cmd.Context(), os.Stdout, args[0])
}

func runEnvWithWriter(ctx context.Context, w io.Writer, id string) error {
	sets, err := parsePairs(envSet, "--set")
	if err != nil {
		return err
	}
	renames, err := parsePairs(envRename, "--rename")
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

	field := "environment"
	if envHeaders {
		field = "headers"
	}
	readOnly := len(sets) == 0 && len(envUnset) == 0 && len(renames) == 0

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
		d := mcp.DraftFromSpec(spec)
		kv, err := selectPairs(d, spec.Kind())
		if err != nil {
			return err
		}

		if readOnly {
			fmt.Fprintf(w, "%s %s\n", engineColor.Sprint(t.engine.DisplayName()), field)
			if kv.Len() == 0 {
				fmt.Fprintf(w, "  %s\n", dimColor.Sprint("(none)"))
			}
			for _, p := range kv.Pairs() {
				value := p.Value
				if !envShowSecrets {
					value = redact.Field(p.Key, p.Value)
				}
				fmt.Fprintf(w, "  %s=%s\n", p.Key, value)
			}
			continue
		}

		if err := applyPairEdits(kv, renames, sets, envUnset); err != nil {
			return errors.NewUserError(errors.Wrapf(err, "%s on %s", field, t.engine.DisplayName()),
				"No engine file was changed by this edit")
		}
		updated, err := d.Spec()
		if err != nil {
			return errors.NewUserError(err, "")
		}
		updates = append(updates, pending{t: t, spec: updated})
	}

	for _, u := range updates {
		if err := u.t.servers.Upsert(ctx, id, u.spec); err != nil {
			return errors.Wrapf(err, "saving to %s", u.t.engine.DisplayName())
		}
		fmt.Fprintln(w, okColor.Sprintf("✓ Updated %s of %q on %s", field, id, u.t.engine.DisplayName()))
	}
	return nil
}

// selectPairs returns the mapping of d picked by --headers, creating it
// when the server has none yet.
func selectPairs(d *mcp.Draft, kind mcp.Kind) (*mcp.KeyValues, error) {
	if envHeaders {
		if !kind.IsRemote() {
			return nil, errors.NewUserError(errors.Newf("headers apply to remote servers, this one is %s", kind), "")
		}
		if d.Headers == nil {
			d.Headers = mcp.NewKeyValues()
		}
		return d.Headers, nil
	}
	if kind != mcp.KindStdio {
		return nil, errors.NewUserError(
			errors.Newf("environment applies to stdio servers, this one is %s", kind),
			"Use --headers to edit the headers of a remote server")
	}
	if d.Env == nil {
		d.Env = mcp.NewKeyValues()
	}
	return d.Env, nil
}

// applyPairEdits runs renames, then sets, then unsets against kv.
// A failed rename leaves kv as it was before that rename.
func applyPairEdits(kv *mcp.KeyValues, renames, sets []mcp.Pair, unsets []string) error {
	for _, r := range renames {
		if err := kv.Rename(r.Key, r.Value); err != nil {
			return errors.Wrapf(err, "renaming %s to %s", r.Key, r.Value)
		}
	}
	for _, s := range sets {
		kv.Set(s.Key, s.Value)
	}
	for _, key := range unsets {
		if !kv.Delete(key) {
			return errors.Wrapf(mcp.ErrKeyNotFound, "unsetting %s", key)
		}
	}
	return nil
}
