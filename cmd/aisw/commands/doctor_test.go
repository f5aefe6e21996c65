package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	aiswerrors "github.com/thoreinstein/aisw/internal/errors"
)

func setDoctorFlags(t *testing.T, jsonOut, yamlOut, fix bool) {
	t.Helper()
	saveGlobals(t)
	prevJSON, prevYAML, prevFix := doctorJSON, doctorYAML, doctorFix
	doctorJSON, doctorYAML, doctorFix = jsonOut, yamlOut, fix
	quiet, verbosity = false, 0
	t.Cleanup(func() { doctorJSON, doctorYAML, doctorFix = prevJSON, prevYAML, prevFix })
}

func TestValidateDoctorFlags(t *testing.T) {
	tests := []struct {
		name      string
		json      bool
		yaml      bool
		quiet     bool
		verbosity int
		wantErr   bool
	}{
		{name: "default"},
		{name: "json only", json: true},
		{name: "verbose only", verbosity: 1},
		{name: "json and yaml", json: true, yaml: true, wantErr: true},
		{name: "json and quiet", json: true, quiet: true, wantErr: true},
		{name: "yaml and verbose", yaml: true, verbosity: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDoctorFlags(t, tt.json, tt.yaml, false)
			quiet, verbosity = tt.quiet, tt.verbosity

			err := validateDoctorFlags(doctorCmd, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDoctorFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoctor_SyntaxErrorExitsTwo(t *testing.T) {
	base := useTestConfig(t)
	setDoctorFlags(t, false, false, false)
	writeTestFile(t, filepath.Join(base, "codex", "config.toml"), "model = \n", 0o644)

	var buf bytes.Buffer
	err := runDoctorWithWriter(context.Background(), &buf)
	if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitSystem {
		t.Fatalf("ExitCode() = %d, want %d (err = %v)", code, aiswerrors.ExitSystem, err)
	}
	output := buf.String()
	if !strings.Contains(output, "[config] config-syntax") {
		t.Errorf("output missing config-syntax failure:\n%s", output)
	}
	if !strings.Contains(output, "Summary:") {
		t.Errorf("output missing summary:\n%s", output)
	}
}

func TestDoctor_JSONReport(t *testing.T) {
	useTestConfig(t)
	setDoctorFlags(t, true, false, false)

	var buf bytes.Buffer
	err := runDoctorWithWriter(context.Background(), &buf)
	// Nothing is installed, which is a warning.
	if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", code, aiswerrors.ExitUser)
	}

	var report struct {
		Results []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(report.Results) != 5 {
		t.Errorf("got %d results, want 5", len(report.Results))
	}
	if report.Results[0].Name != "engine-detection" || report.Results[0].Status != "warning" {
		t.Errorf("first result = %+v, want engine-detection warning", report.Results[0])
	}
}

func TestDoctor_FixRepairsCredentialMode(t *testing.T) {
	base := useTestConfig(t)
	setDoctorFlags(t, false, false, true)
	writeTestFile(t, filepath.Join(base, "codex", "config.toml"), "model = \"gpt-5-codex\"\n", 0o644)
	auth := filepath.Join(base, "codex", "auth.json")
	writeTestFile(t, auth, `{"OPENAI_API_KEY": "sk-test-0123456789"}`+"\n", 0o644)

	var buf bytes.Buffer
	_ = runDoctorWithWriter(context.Background(), &buf)

	info, err := os.Stat(auth)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("auth.json mode = %04o, want 0600", perm)
	}
	if !strings.Contains(buf.String(), "fixed "+auth) {
		t.Errorf("output missing fix report:\n%s", buf.String())
	}
}
