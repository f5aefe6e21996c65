package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestShowCommand_Metadata(t *testing.T) {
	if showCmd.Use != "show <id>" {
		t.Errorf("Use = %q, want %q", showCmd.Use, "show <id>")
	}
	if showCmd.Flags().Lookup("json") == nil {
		t.Error("--json flag should be defined")
	}
}

func TestRunShow_IdenticalAcrossEngines(t *testing.T) {
	reg := useTestEngines(t, "claude", "gemini")
	seed(t, reg, "github", stdioSpec(t, "npx", "srv"), "claude", "gemini")

	var buf bytes.Buffer
	if err := runShowWithWriter(context.Background(), &buf, "github"); err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Server: github") {
		t.Errorf("output missing header:\n%s", output)
	}
	if !strings.Contains(output, "Claude Code, Gemini CLI") {
		t.Errorf("output should list both engines on one line:\n%s", output)
	}
	if strings.Contains(output, "differ") {
		t.Error("identical definitions reported as different")
	}
}

func TestRunShow_Differences(t *testing.T) {
	reg := useTestEngines(t, "claude", "codex")
	seed(t, reg, "github", stdioSpec(t, "npx", "a"), "claude")
	seed(t, reg, "github", stdioSpec(t, "npx", "b"), "codex")
	setFlag(t, &showJSON, true)

	var buf bytes.Buffer
	if err := runShowWithWriter(context.Background(), &buf, "github"); err != nil {
		t.Fatalf("runShow() error = %v", err)
	}
	var out showOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out.Identical {
		t.Error("Identical = true for different definitions")
	}
	if len(out.Engines) != 2 {
		t.Errorf("Engines = %d, want 2", len(out.Engines))
	}
}

func TestRunShow_NotFound(t *testing.T) {
	useTestEngines(t, "claude")
	err := runShowWithWriter(context.Background(), &bytes.Buffer{}, "missing")
	if !errors.Is(err, mcp.ErrServerNotFound) {
		t.Errorf("runShow() error = %v, want ErrServerNotFound", err)
	}
}
