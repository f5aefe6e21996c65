package mcp

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestRunArgs_List(t *testing.T) {
	reg := useTestEngines(t, "codex")
	seed(t, reg, "github", stdioSpec(t, "npx", "-y", "srv"), "codex")

	var buf bytes.Buffer
	if err := runArgsWithWriter(context.Background(), &buf, "github"); err != nil {
		t.Fatalf("runArgs() error = %v", err)
	}
	for _, want := range []string{"[0] -y", "[1] srv"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunArgs_Edits(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T)
		want   []string
		errIs  error
		wantOK bool
	}{
		{
			name:   "set then append",
			setup: func(t *testing.T) {
				setFlag(t, &argsSet, []string{"1=srv@1.0"})
				setFlag(t, &argsAppend, []string{"--ro"})
			},
			want:   []string{"-y", "srv@1.0", "--ro"},
			wantOK: true,
		},
		{
			name:   "insert",
			setup:  func(t *testing.T) { setFlag(t, &argsInsert, []string{"0=--quiet"}) },
			want:   []string{"--quiet", "-y", "srv"},
			wantOK: true,
		},
		{
			name:   "move",
			setup:  func(t *testing.T) { setFlag(t, &argsMove, []string{"0:1"}) },
			want:   []string{"srv", "-y"},
			wantOK: true,
		},
		{
			name:   "remove",
			setup:  func(t *testing.T) { setFlag(t, &argsRemove, []int{0}) },
			want:   []string{"srv"},
			wantOK: true,
		},
		{
			name:  "index out of range",
			setup: func(t *testing.T) { setFlag(t, &argsSet, []string{"5=x"}) },
			want:  []string{"-y", "srv"},
			errIs: mcp.ErrIndexOutOfRange,
		},
		{
			name:  "malformed move",
			setup: func(t *testing.T) { setFlag(t, &argsMove, []string{"0-1"}) },
			want:  []string{"-y", "srv"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := useTestEngines(t, "claude")
			seed(t, reg, "github", stdioSpec(t, "npx", "-y", "srv"), "claude")
			tt.setup(t)

			err := runArgsWithWriter(context.Background(), &bytes.Buffer{}, "github")
			if tt.wantOK && err != nil {
				t.Fatalf("runArgs() error = %v", err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatal("runArgs() expected error")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Errorf("runArgs() error = %v, want %v", err, tt.errIs)
				}
			}
			st, _ := getServer(t, reg, "claude", "github").Stdio()
			if got := []string(st.Args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunArgs_RemoteServer(t *testing.T) {
	reg := useTestEngines(t, "claude")
	remote, _ := mcp.NewSSE("https://example.com/sse", nil)
	seed(t, reg, "events", remote, "claude")
	setFlag(t, &argsAppend, []string{"x"})

	if err := runArgsWithWriter(context.Background(), &bytes.Buffer{}, "events"); err == nil {
		t.Error("runArgs() expected error for a remote server")
	}
}
