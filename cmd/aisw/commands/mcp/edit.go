package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/cli/prompt"
	"github.com/thoreinstein/aisw/internal/editor"
	"github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
)

// editContent opens content in the user's editor. Tests replace it.
var editContent = editor.Edit

func init() {
	flags.AddScopeFlag(editCmd)
	Cmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an MCP server in $EDITOR",
	Long: `Open an MCP server definition in your editor as JSON.

Every field is shown, including the ones the current transport does not
use, so switching "type" between stdio, http and sse keeps what you typed.
Unused fields are dropped when the server is saved. Fields aisw does not
model are kept as they are.

When the id does not exist yet, an empty stdio server is opened and saved
as a new server. If the edited text is invalid you are offered another
try; declining leaves the engine file unchanged.

Uses $EDITOR, then $VISUAL, then nano or vi.`,
	Example: `  # Edit a Claude server
  aisw mcp edit github --engine claude

  # Create a Gemini project server interactively
  aisw mcp edit docs --engine gemini --scope project

  See Also:
    aisw mcp show     - Show server details
    aisw mcp env      - Edit environment variables and headers`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	return runEditWithIO(cmd.Context(), os.Stdin, os.Stdout, args[0])
}

func runEditWithIO(ctx context.Context, in io.Reader, w io.Writer, id string) error {
	t, err := singleTarget(ctx)
	if err != nil {
		return err
	}

	draft := &mcp.Draft{Type: mcp.KindStdio}
	var original *mcp.Spec
	switch spec, err := t.servers.Get(ctx, id); {
	case err == nil:
		original = spec
		draft = mcp.DraftFromSpec(spec)
	case errors.Is(err, mcp.ErrServerNotFound):
		fmt.Fprintln(w, dimColor.Sprintf("%q does not exist on %s, creating it", id, t.engine.DisplayName()))
	default:
		return errors.Wrapf(err, "reading %s servers", t.engine.DisplayName())
	}

	content, err := mcp.EncodeDraft(draft)
	if err != nil {
		return err
	}

	selector := prompt.NewSelectorWithIO(in, w)
	var spec *mcp.Spec
	for {
		edited, err := editContent(ctx, content, "aisw-mcp-*.json")
		if err != nil {
			return err
		}
		if original != nil && bytes.Equal(bytes.TrimSpace(edited), bytes.TrimSpace(content)) {
			fmt.Fprintln(w, "No changes")
			return nil
		}

		spec, err = specFromEdit(draft, edited)
		if err == nil {
			break
		}
		fmt.Fprintln(w, warnColor.Sprintf("Invalid server: %v", err))
		again, perr := selector.Confirm("Edit again?")
		if perr != nil || !again {
			return errors.NewUserError(err, "The engine file was not changed")
		}
		content = edited
	}

	if original != nil && original.Equal(spec) {
		fmt.Fprintln(w, "No changes")
		return nil
	}
	if err := t.servers.Upsert(ctx, id, spec); err != nil {
		return errors.Wrapf(err, "saving to %s", t.engine.DisplayName())
	}
	fmt.Fprintln(w, okColor.Sprintf("✓ Saved %q to %s", id, t.engine.DisplayName()))
	return nil
}

// specFromEdit replaces draft with the edited JSON and builds the server.
// draft is left unchanged when the JSON does not decode.
func specFromEdit(draft *mcp.Draft, edited []byte) (*mcp.Spec, error) {
	if err := draft.ReplaceFromJSON(edited); err != nil {
		return nil, err
	}
	return draft.Spec()
}
