package mcp

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/aisw/internal/logging"
)

// setNoColor sets color.NoColor for the duration of the test.
func setNoColor(t *testing.T, v bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = v
	t.Cleanup(func() { color.NoColor = prev })
}

func TestRunList_NoEscapesWhenPiped(t *testing.T) {
	reg := useTestEngines(t, "claude")
	seed(t, reg, "github", stdioSpec(t, "npx", "srv"), "claude")

	var buf bytes.Buffer
	setNoColor(t, false)
	logging.ConfigureColor(&buf)

	if err := runListWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output to a buffer contains escape codes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "github") {
		t.Errorf("output missing server:\n%s", buf.String())
	}
}

func TestRunList_ColorsWhenEnabled(t *testing.T) {
	reg := useTestEngines(t, "claude")
	seed(t, reg, "github", stdioSpec(t, "npx", "srv"), "claude")
	setNoColor(t, false)

	var buf bytes.Buffer
	if err := runListWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output has no color with colors enabled: %q", buf.String())
	}
}

func TestRunImport_IssueColors(t *testing.T) {
	useTestEngines(t, "claude")
	setNoColor(t, false)

	tests := []struct {
		name   string
		bundle string
		want   string
	}{
		{
			name:   "error is red",
			bundle: `{"mcpServers": {"broken": {"type": "sse"}}}`,
			want:   "\x1b[31m",
		},
		{
			name:   "warning is yellow",
			bundle: `{"mcpServers": {"local": {"type": "stdio", "command": "npx", "url": "https://x/mcp"}}}`,
			want:   "\x1b[33m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlag(t, &importDryRun, true)
			var buf bytes.Buffer
			_ = runImportWithWriter(context.Background(), &buf, strings.NewReader(tt.bundle), "-")
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to start with %q", buf.String(), tt.want)
			}
		})
	}
}
