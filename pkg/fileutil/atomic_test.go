package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{name: "config file", data: []byte("model = \"gpt-5-codex\"\n"), perm: 0o644},
		{name: "empty data", data: []byte{}, perm: 0o644},
		{name: "credentials", data: []byte(`{"OPENAI_API_KEY":"sk-test"}`), perm: 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "target")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing")
	if err := os.WriteFile(path, []byte("original\n"), 0o644); err != nil {
		t.Fatalf("creating original file: %v", err)
	}

	if err := AtomicWriteFile(path, []byte("replaced\n"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "replaced\n" {
		t.Errorf("content = %q, want %q", got, "replaced\n")
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %o, want 600", info.Mode().Perm())
	}
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "file.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0o600); err == nil {
		t.Error("AtomicWriteFile() expected error for missing directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".codex", "nested", "config.toml")

	if err := WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "x = 1\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	v := map[string]any{"mcpServers": map[string]any{"github": map[string]string{"command": "npx"}}}

	if err := AtomicWriteJSON(path, v); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	want := "{\n  \"mcpServers\": {\n    \"github\": {\n      \"command\": \"npx\"\n    }\n  }\n}\n"
	if string(got) != want {
		t.Errorf("content =\n%s\nwant\n%s", got, want)
	}
}

func TestAtomicWriteJSON_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := AtomicWriteJSON(path, map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("AtomicWriteJSON() expected error for channel value")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created despite marshal failure")
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	v := map[string]any{"default_engines": []string{"claude", "codex"}}

	if err := AtomicWriteYAML(path, v); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	text := string(got)
	if !strings.Contains(text, "default_engines:") || !strings.Contains(text, "- codex") {
		t.Errorf("content = %q", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("YAML output should end with a newline")
	}
}

func TestAtomicWriteYAML_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := AtomicWriteYAML(path, map[string]any{"fn": func() {}}); err == nil {
		t.Error("AtomicWriteYAML() expected error for func value")
	}
}
