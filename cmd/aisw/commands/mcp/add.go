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
	"github.com/thoreinstein/aisw/internal/paths"
)

// Sentinel errors for MCP add operations.
var (
	errAddMissingCommandOrURL = errors.New("either command or --url is required")
	errAddBothCommandAndURL   = errors.New("cannot specify both command and --url")
)

// Package-level flag variables for mcp add command.
var (
	addURL     string
	addType    string
	addCwd     string
	addEnv     []string
	addHeaders []string
	addForce   bool
)

func init() {
	addCmd.Flags().StringVar(&addURL, "url", "",
		"remote server endpoint")
	addCmd.Flags().StringVarP(&addType, "type", "t", "",
		"transport type: stdio, http, sse (default: stdio for a command, http for --url)")
	addCmd.Flags().StringVar(&addCwd, "cwd", "",
		"working directory of a stdio server")
	addCmd.Flags().StringArrayVar(&addEnv, "env", nil,
		"environment variable in KEY=VALUE format (repeatable)")
	addCmd.Flags().StringArrayVar(&addHeaders, "header", nil,
		"HTTP header of a remote server in KEY=VALUE format (repeatable)")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false,
		"replace the server if it already exists")
	flags.AddScopeFlag(addCmd)
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <id> [-- command [args...]]",
	Short: "Add an MCP server configuration",
	Long: `Add an MCP server configuration to the targeted engine(s).

For local stdio servers, give the command and its arguments after "--" so
that flags meant for the server are not parsed by aisw. For remote servers,
use --url; the transport defaults to streamable HTTP, use --type sse for
Server-Sent Events.

Environment variables can be set with --env and HTTP headers with --header,
both repeatable and kept in the order given.`,
	Example: `  # Add a local stdio server
  aisw mcp add github -- npx -y @modelcontextprotocol/server-github

  # Add a remote server with an auth header
  aisw mcp add api --url https://api.example.com/mcp --header "Authorization=Bearer token"

  # Add an SSE server to Gemini only
  aisw mcp add events --url https://events.example.com/sse --type sse --engine gemini

  # Add a local server with environment variables
  aisw mcp add db-tools --env DB_HOST=localhost --env DB_PORT=5432 -- ./db-mcp

  # Replace an existing server
  aisw mcp add github --force -- npx -y @modelcontextprotocol/server-github@latest

  See Also:
    aisw mcp list     - List configured servers
    aisw mcp remove   - Remove a server`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	return runAddWithWriter(cmd.Context(), os.Stdout, args)
}

func runAddWithWriter(ctx context.Context, w io.Writer, args []string) error {
	id := args[0]
	spec, err := buildSpec(args[1:])
	if err != nil {
		return err
	}

	targets, err := newTargets(ctx)
	if err != nil {
		return errors.Wrap(err, "resolving engines")
	}

	// Check every engine first so a conflict leaves all files untouched
	if spec.Kind() == mcp.KindSSE {
		for _, t := range targets {
			if t.engine.Name() == paths.EngineCodex {
				return errors.NewUserError(
					errors.Wrapf(mcp.ErrUnsupportedTransport, "%s has no sse transport", t.engine.DisplayName()),
					"Use --type http, or leave Codex out with --engine")
			}
		}
	}
	if !addForce {
		for _, t := range targets {
			if _, err := t.servers.Get(ctx, id); err == nil {
				return errors.NewUserError(
					errors.Newf("server %q already exists on %s", id, t.engine.DisplayName()),
					"Use --force to replace it")
			} else if !errors.Is(err, mcp.ErrServerNotFound) {
				return errors.Wrapf(err, "reading %s servers", t.engine.DisplayName())
			}
		}
	}

	for _, t := range targets {
		fmt.Fprintf(w, "Adding '%s' to %s... ", id, t.engine.DisplayName())
		if err := t.servers.Upsert(ctx, id, spec); err != nil {
			fmt.Fprintln(w, "failed")
			return errors.Wrapf(err, "adding to %s", t.engine.DisplayName())
		}
		fmt.Fprintln(w, "done")
	}

	fmt.Fprintf(w, "\n%s\n", okColor.Sprintf("✓ Added %q to %d engine(s)", id, len(targets)))
	return nil
}

// buildSpec turns the command line and flags into a validated server.
func buildSpec(command []string) (*mcp.Spec, error) {
	if len(command) == 0 && addURL == "" {
		return nil, errors.NewUserError(errAddMissingCommandOrURL, "Run 'aisw mcp add --help' for examples")
	}
	if len(command) > 0 && addURL != "" {
		return nil, errors.NewUserError(errAddBothCommandAndURL, "")
	}

	env, err := parsePairs(addEnv, "--env")
	if err != nil {
		return nil, err
	}
	headers, err := parsePairs(addHeaders, "--header")
	if err != nil {
		return nil, err
	}

	d := &mcp.Draft{Type: mcp.Kind(addType), URL: addURL, Cwd: addCwd}
	if len(command) > 0 {
		d.Command = command[0]
		d.Args = mcp.ArgList(command[1:])
	}
	if len(env) > 0 {
		d.Env = mcp.KeyValuesFromPairs(env...)
	}
	if len(headers) > 0 {
		d.Headers = mcp.KeyValuesFromPairs(headers...)
	}
	d.Type = d.EffectiveKind()

	if d.Type.IsRemote() && (d.Env != nil || d.Cwd != "") {
		return nil, errors.NewUserError(
			errors.Newf("--env and --cwd apply to stdio servers, not %s", d.Type), "")
	}
	if d.Type == mcp.KindStdio && d.Headers != nil {
		return nil, errors.NewUserError(errors.New("--header applies to remote servers"), "")
	}

	spec, err := d.Spec()
	if err != nil {
		return nil, errors.NewUserError(err, "")
	}
	return spec, nil
}
