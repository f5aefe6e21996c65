package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

func TestBackup_SameSecondGetsDistinctIDs(t *testing.T) {
	src := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, src, "model = \"x\"\n", 0o644)

	fixed := time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC)
	m := NewManager(WithBackupDir(t.TempDir()))
	m.now = func() time.Time { return fixed }

	first, err := m.Backup("codex", []string{src})
	if err != nil {
		t.Fatalf("first Backup() error = %v", err)
	}
	second, err := m.Backup("codex", []string{src})
	if err != nil {
		t.Fatalf("second Backup() error = %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("backup IDs collided: %s", first.ID)
	}
	if first.ID != "20260123T100712" || second.ID != "20260123T100712-1" {
		t.Errorf("IDs = %q, %q", first.ID, second.ID)
	}
}

func TestBackup_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "auth.json")
	writeFile(t, present, `{"OPENAI_API_KEY":"sk"}`, 0o600)

	m := NewManager(WithBackupDir(t.TempDir()))
	manifest, err := m.Backup("codex", []string{present, filepath.Join(dir, "missing.toml")})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if len(manifest.Files) != 1 || manifest.Files[0].Mode != 0o600 {
		t.Errorf("Files = %+v", manifest.Files)
	}

	if _, err := m.Backup("codex", []string{filepath.Join(dir, "missing.toml")}); !errors.Is(err, ErrNothingToBackUp) {
		t.Errorf("Backup(missing) error = %v, want ErrNothingToBackUp", err)
	}
}

func TestRestore(t *testing.T) {
	src := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, src, `{"theme":"dark"}`, 0o640)

	m := NewManager(WithBackupDir(t.TempDir()))
	manifest, err := m.Backup("gemini", []string{src})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	writeFile(t, src, `{"theme":"light"}`, 0o644)
	if err := m.Restore("gemini", manifest.ID); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	got, _ := os.ReadFile(src)
	if string(got) != `{"theme":"dark"}` {
		t.Errorf("restored content = %s", got)
	}
	info, _ := os.Stat(src)
	if info.Mode().Perm() != 0o640 {
		t.Errorf("restored mode = %o, want 640", info.Mode().Perm())
	}
}

func TestRestore_DetectsCorruption(t *testing.T) {
	src := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, src, "a = 1\n", 0o644)

	root := t.TempDir()
	m := NewManager(WithBackupDir(root))
	manifest, err := m.Backup("codex", []string{src})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	copied := filepath.Join(root, "codex", manifest.ID, manifest.Files[0].RelPath)
	writeFile(t, copied, "tampered\n", 0o600)

	if err := m.Restore("codex", manifest.ID); !errors.Is(err, ErrBackupCorrupted) {
		t.Errorf("Restore() error = %v, want ErrBackupCorrupted", err)
	}
	got, _ := os.ReadFile(src)
	if string(got) != "a = 1\n" {
		t.Error("corrupted backup modified the original file")
	}
}

func TestSnapshot_OncePerEngineAndPrunes(t *testing.T) {
	src := filepath.Join(t.TempDir(), ".claude.json")
	writeFile(t, src, "{}", 0o600)
	root := t.TempDir()

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		m := NewManager(WithBackupDir(root), WithRetentionCount(2))
		m.now = func() time.Time { return tick }
		tick = tick.Add(time.Minute)

		if err := m.Snapshot("claude", src); err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if err := m.Snapshot("claude", src); err != nil {
			t.Fatalf("second Snapshot() error = %v", err)
		}
	}

	manifests, err := NewManager(WithBackupDir(root)).List("claude")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(manifests) != 2 {
		t.Fatalf("List() returned %d backups, want 2", len(manifests))
	}
	if !manifests[0].CreatedAt.After(manifests[1].CreatedAt) {
		t.Error("List() not sorted newest first")
	}
}

func TestSnapshot_NothingToBackUp(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	if err := m.Snapshot("codex", filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("Snapshot() error = %v, want nil", err)
	}
}

func TestList_NoBackups(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	if _, err := m.List("codex"); !errors.Is(err, ErrNoBackupsFound) {
		t.Errorf("List() error = %v, want ErrNoBackupsFound", err)
	}
}

func TestGet_RejectsTraversal(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	if _, err := m.Get("codex", "../other"); err == nil {
		t.Error("Get() accepted an ID with a path separator")
	}
}

func TestRelPathFor(t *testing.T) {
	tests := []string{"/usr/local/config.toml", "/home/me/.codex/auth.json", "/weird:name/file"}
	for _, in := range tests {
		got := relPathFor(in)
		if strings.Contains(got, ":") {
			t.Errorf("relPathFor(%q) = %q contains colon", in, got)
		}
		if filepath.IsAbs(got) {
			t.Errorf("relPathFor(%q) = %q is absolute", in, got)
		}
	}
}
