package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/platform"
)

func TestWriteVersion_OutputFormat(t *testing.T) {
	useTestConfig(t)
	reg := platform.NewRegistry(platform.WithConfig(flags.GetConfig()))

	var buf bytes.Buffer
	writeVersion(&buf, reg)
	output := buf.String()

	for _, want := range []string{"aisw version", "commit:", "built:", "go:", runtime.Version(), "engines:"} {
		if !strings.Contains(output, want) {
			t.Errorf("version output missing %q\nGot:\n%s", want, output)
		}
	}
}

func TestWriteVersion_EngineStatus(t *testing.T) {
	base := useTestConfig(t)
	if err := os.MkdirAll(filepath.Join(base, "codex"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(base, "gemini", "settings.json"), "{}\n", 0o644)
	reg := platform.NewRegistry(platform.WithConfig(flags.GetConfig()))

	var buf bytes.Buffer
	writeVersion(&buf, reg)
	output := buf.String()

	tests := []struct {
		engine string
		want   string
	}{
		{"claude", "not installed"},
		{"codex", "installed, not configured"},
		{"gemini", "installed"},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			var line string
			for l := range strings.SplitSeq(output, "\n") {
				if strings.HasPrefix(strings.TrimSpace(l), tt.engine+":") {
					line = l
				}
			}
			if line == "" {
				t.Fatalf("no line for %s in:\n%s", tt.engine, output)
			}
			if got := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), tt.engine+":")); got != tt.want {
				t.Errorf("%s status = %q, want %q", tt.engine, got, tt.want)
			}
		})
	}
}
