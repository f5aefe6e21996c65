package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/thoreinstein/aisw/cmd/aisw/commands/flags"
	"github.com/thoreinstein/aisw/internal/backup"
	"github.com/thoreinstein/aisw/internal/config"
	aiswerrors "github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/logging"
	"github.com/thoreinstein/aisw/internal/platform"
)

// useTestEnv points newEnv at engines and a backup store under a temp dir.
func useTestEnv(t *testing.T, names ...string) *env {
	t.Helper()
	base := t.TempDir()
	cfg := &config.Config{Engines: map[string]config.EngineOverride{}}
	for _, name := range []string{"claude", "codex", "gemini"} {
		cfg.Engines[name] = config.EngineOverride{ConfigDir: filepath.Join(base, name)}
	}
	reg := platform.NewRegistry(platform.WithConfig(cfg), platform.WithProjectRoot(base))

	e := &env{reg: reg, mgr: backup.NewManager(backup.WithBackupDir(filepath.Join(base, "backups")))}
	for _, name := range names {
		eng, err := reg.Engine(name)
		if err != nil {
			t.Fatal(err)
		}
		e.engines = append(e.engines, eng)
	}

	prev := newEnv
	newEnv = func(context.Context) (*env, error) { return e, nil }
	t.Cleanup(func() { newEnv = prev })
	return e
}

func useEngineFlag(t *testing.T, engines ...string) {
	t.Helper()
	prev := flags.GetEngineFlag()
	flags.SetEngineFlag(engines)
	t.Cleanup(func() { flags.SetEngineFlag(prev) })
}

func writeEngineFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRunCreate_CodexIncludesAuth(t *testing.T) {
	e := useTestEnv(t, "codex")
	codex := e.reg.Codex()
	writeEngineFile(t, codex.MCPConfigPath(), "model = \"x\"\n")
	writeEngineFile(t, codex.AuthPath(), `{"OPENAI_API_KEY":"k"}`)

	var buf bytes.Buffer
	if err := runCreateWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	list, err := e.mgr.List("codex")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || len(list[0].Files) != 2 {
		t.Fatalf("backups = %+v, want one backup of two files", list)
	}
	if !strings.Contains(buf.String(), "(2 files)") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunCreate_NothingToBackUp(t *testing.T) {
	useTestEnv(t, "claude", "gemini")

	var buf bytes.Buffer
	if err := runCreateWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No backups created") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunList_JSON(t *testing.T) {
	e := useTestEnv(t, "claude", "gemini")
	writeEngineFile(t, e.reg.Gemini().MCPConfigPath(), `{}`)
	if _, err := e.mgr.Backup("gemini", []string{e.reg.Gemini().MCPConfigPath()}); err != nil {
		t.Fatal(err)
	}
	setJSON(t)

	var buf bytes.Buffer
	if err := runListWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	var out []listOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(out) != 2 || len(out[0].Backups) != 0 || len(out[1].Backups) != 1 {
		t.Fatalf("output = %+v", out)
	}
	if out[1].Backups[0].Files[0] != e.reg.Gemini().MCPConfigPath() {
		t.Errorf("Files = %v", out[1].Backups[0].Files)
	}
}

func setJSON(t *testing.T) {
	t.Helper()
	listJSON = true
	t.Cleanup(func() { listJSON = false })
}

func TestRunList_Empty(t *testing.T) {
	useTestEnv(t, "claude")
	var buf bytes.Buffer
	if err := runListWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No backups available") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunRestore_RequiresEngine(t *testing.T) {
	useTestEnv(t, "claude")
	useEngineFlag(t)

	err := runRestoreWithIO(context.Background(), strings.NewReader(""), &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "--engine is required") {
		t.Errorf("runRestore() error = %v", err)
	}
}

func TestRunRestore_PicksAndConfirms(t *testing.T) {
	e := useTestEnv(t, "claude")
	useEngineFlag(t, "claude")
	path := e.reg.Claude().MCPConfigPath()
	writeEngineFile(t, path, `{"original": true}`)
	if _, err := e.mgr.Backup("claude", []string{path}); err != nil {
		t.Fatal(err)
	}
	writeEngineFile(t, path, `{"modified": true}`)

	var out bytes.Buffer
	if err := runRestoreWithIO(context.Background(), strings.NewReader("y\n"), &out, nil); err != nil {
		t.Fatalf("runRestore() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"original": true}` {
		t.Errorf("restored content = %s", data)
	}
	if !strings.Contains(out.String(), path) {
		t.Error("restore should list the files it overwrites")
	}
}

func TestRunRestore_Declined(t *testing.T) {
	e := useTestEnv(t, "claude")
	useEngineFlag(t, "claude")
	path := e.reg.Claude().MCPConfigPath()
	writeEngineFile(t, path, `{"original": true}`)
	m, err := e.mgr.Backup("claude", []string{path})
	if err != nil {
		t.Fatal(err)
	}
	writeEngineFile(t, path, `{"modified": true}`)

	err = runRestoreWithIO(context.Background(), strings.NewReader("n\n"), &bytes.Buffer{}, []string{m.ID})
	if !errors.Is(err, aiswerrors.ErrAborted) {
		t.Fatalf("runRestore() error = %v, want ErrAborted", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != `{"modified": true}` {
		t.Error("declined restore changed the file")
	}
}

func TestRunRestore_UnknownID(t *testing.T) {
	useTestEnv(t, "codex")
	useEngineFlag(t, "codex")
	restoreYes = true
	t.Cleanup(func() { restoreYes = false })

	if err := runRestoreWithIO(context.Background(), strings.NewReader(""), &bytes.Buffer{}, []string{"nope"}); err == nil {
		t.Error("runRestore() expected error for unknown backup")
	}
}

func TestRunPrune(t *testing.T) {
	e := useTestEnv(t, "gemini")
	path := e.reg.Gemini().MCPConfigPath()
	writeEngineFile(t, path, `{}`)
	for range 3 {
		if _, err := e.mgr.Backup("gemini", []string{path}); err != nil {
			t.Fatal(err)
		}
	}
	origKeep := pruneKeep
	defer func() { pruneKeep = origKeep }()
	pruneKeep = 1

	var buf bytes.Buffer
	if err := runPruneWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runPrune() error = %v", err)
	}
	list, _ := e.mgr.List("gemini")
	if len(list) != 1 {
		t.Errorf("backups after prune = %d, want 1", len(list))
	}
	if !strings.Contains(buf.String(), "removed 2 old backup(s)") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunPrune_NegativeKeep(t *testing.T) {
	origKeep := pruneKeep
	defer func() { pruneKeep = origKeep }()
	pruneKeep = -1

	err := runPruneWithWriter(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for negative keep value")
	}
	if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", code, aiswerrors.ExitUser)
	}
}

func TestOutput_NoEscapesWhenPiped(t *testing.T) {
	e := useTestEnv(t, "codex")
	codex := e.reg.Codex()
	writeEngineFile(t, codex.MCPConfigPath(), "model = \"x\"\n")

	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	logging.ConfigureColor(&buf)
	if err := runCreateWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}
	if err := runListWithWriter(context.Background(), &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output to a buffer contains escape codes: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Engine: Codex") {
		t.Errorf("output = %q", buf.String())
	}
}
