package mcp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestRunRemove(t *testing.T) {
	reg := useTestEngines(t, "claude", "codex")
	seed(t, reg, "github", stdioSpec(t, "npx"), "claude", "codex")
	seed(t, reg, "keep", stdioSpec(t, "npx"), "claude")

	var buf bytes.Buffer
	if err := runRemoveWithWriter(context.Background(), &buf, []string{"github"}); err != nil {
		t.Fatalf("runRemove() error = %v", err)
	}
	for _, e := range []string{"claude", "codex"} {
		servers, _ := reg.ListServers(context.Background(), e)
		if _, ok := servers["github"]; ok {
			t.Errorf("github still present on %s", e)
		}
	}
	getServer(t, reg, "claude", "keep")
}

func TestRunRemove_Unknown(t *testing.T) {
	useTestEngines(t, "gemini")
	err := runRemoveWithWriter(context.Background(), &bytes.Buffer{}, []string{"nope"})
	if !errors.Is(err, mcp.ErrServerNotFound) {
		t.Errorf("runRemove() error = %v, want ErrServerNotFound", err)
	}
}
