package mcp

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	aiswerrors "github.com/thoreinstein/aisw/internal/errors"
	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestAddCommand_Metadata(t *testing.T) {
	if !strings.HasPrefix(addCmd.Use, "add ") {
		t.Errorf("Use = %q, want add prefix", addCmd.Use)
	}
	for _, name := range []string{"url", "type", "cwd", "env", "header", "force", "scope"} {
		if addCmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag should be defined", name)
		}
	}
}

func TestBuildSpec(t *testing.T) {
	tests := []struct {
		name     string
		command  []string
		url      string
		typ      string
		env      []string
		headers  []string
		cwd      string
		wantKind mcp.Kind
		wantErr  error
	}{
		{
			name:     "stdio from command",
			command:  []string{"npx", "-y", "srv"},
			env:      []string{"B=2", "A=1"},
			wantKind: mcp.KindStdio,
		},
		{
			name:     "url defaults to http",
			url:      "https://example.com/mcp",
			headers:  []string{"Authorization=Bearer x"},
			wantKind: mcp.KindHTTP,
		},
		{
			name:     "explicit sse",
			url:      "https://example.com/sse",
			typ:      "sse",
			wantKind: mcp.KindSSE,
		},
		{
			name:    "nothing given",
			wantErr: errAddMissingCommandOrURL,
		},
		{
			name:    "both command and url",
			command: []string{"npx"},
			url:     "https://example.com",
			wantErr: errAddBothCommandAndURL,
		},
		{
			name:    "bad env pair",
			command: []string{"npx"},
			env:     []string{"NOEQUALS"},
		},
		{
			name: "env on remote",
			url:  "https://example.com",
			env:  []string{"A=1"},
		},
		{
			name:    "header on stdio",
			command: []string{"npx"},
			headers: []string{"A=1"},
		},
		{
			name:    "sse without url",
			command: []string{"npx"},
			typ:     "sse",
			wantErr: mcp.ErrMissingURL,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlag(t, &addURL, tt.url)
			setFlag(t, &addType, tt.typ)
			setFlag(t, &addEnv, tt.env)
			setFlag(t, &addHeaders, tt.headers)
			setFlag(t, &addCwd, tt.cwd)

			spec, err := buildSpec(tt.command)
			if tt.wantKind == "" {
				if err == nil {
					t.Fatalf("buildSpec() = %v, want error", spec)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("buildSpec() error = %v, want %v", err, tt.wantErr)
				}
				if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitUser {
					t.Errorf("ExitCode() = %d, want %d", code, aiswerrors.ExitUser)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildSpec() error = %v", err)
			}
			if spec.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", spec.Kind(), tt.wantKind)
			}
		})
	}
}

func TestBuildSpec_KeepsEnvOrder(t *testing.T) {
	setFlag(t, &addEnv, []string{"Z=1", "A=2"})
	spec, err := buildSpec([]string{"npx"})
	if err != nil {
		t.Fatalf("buildSpec() error = %v", err)
	}
	st, _ := spec.Stdio()
	if got, want := st.Env.Keys(), []string{"Z", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("env keys = %v, want %v", got, want)
	}
}

func TestRunAdd_WritesEveryEngine(t *testing.T) {
	reg := useTestEngines(t, "claude", "codex", "gemini")

	var buf bytes.Buffer
	if err := runAddWithWriter(context.Background(), &buf, []string{"github", "npx", "-y", "srv"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	want := stdioSpec(t, "npx", "-y", "srv")
	for _, e := range []string{"claude", "codex", "gemini"} {
		if got := getServer(t, reg, e, "github"); !got.Equal(want) {
			t.Errorf("%s server = %v, want %v", e, got.Endpoint(), want.Endpoint())
		}
	}
	if !strings.Contains(buf.String(), "Added \"github\" to 3 engine(s)") {
		t.Errorf("output missing summary:\n%s", buf.String())
	}
}

func TestRunAdd_ConflictLeavesAllEnginesUntouched(t *testing.T) {
	reg := useTestEngines(t, "claude", "gemini")
	seed(t, reg, "github", stdioSpec(t, "old"), "gemini")

	var buf bytes.Buffer
	err := runAddWithWriter(context.Background(), &buf, []string{"github", "npx"})
	if err == nil {
		t.Fatal("runAdd() expected conflict error")
	}
	if hint := aiswerrors.SuggestionFor(err); !strings.Contains(hint, "--force") {
		t.Errorf("suggestion = %q, want mention of --force", hint)
	}
	servers, _ := reg.ListServers(context.Background(), "claude")
	if _, ok := servers["github"]; ok {
		t.Error("claude was written despite the conflict on gemini")
	}
}

func TestRunAdd_ForceReplaces(t *testing.T) {
	reg := useTestEngines(t, "codex")
	seed(t, reg, "github", stdioSpec(t, "old"), "codex")
	setFlag(t, &addForce, true)
	setFlag(t, &addURL, "https://example.com/mcp")

	var buf bytes.Buffer
	if err := runAddWithWriter(context.Background(), &buf, []string{"github"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	if got := getServer(t, reg, "codex", "github"); got.Kind() != mcp.KindHTTP {
		t.Errorf("Kind() = %q, want http", got.Kind())
	}
}

func TestRunAdd_SSERejectedForCodex(t *testing.T) {
	reg := useTestEngines(t, "claude", "codex")
	setFlag(t, &addURL, "https://example.com/sse")
	setFlag(t, &addType, "sse")

	var buf bytes.Buffer
	err := runAddWithWriter(context.Background(), &buf, []string{"events"})
	if !errors.Is(err, mcp.ErrUnsupportedTransport) {
		t.Fatalf("runAdd() error = %v, want ErrUnsupportedTransport", err)
	}
	if code := aiswerrors.ExitCode(err); code != aiswerrors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", code, aiswerrors.ExitUser)
	}
	servers, _ := reg.ListServers(context.Background(), "claude")
	if _, ok := servers["events"]; ok {
		t.Error("claude was written although codex rejected the server")
	}
}
