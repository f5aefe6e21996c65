package gemini

import (
	"encoding/json"
	"testing"

	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestMCPTranslator_FromEngine(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		wantKind mcp.Kind
		wantURL  string
		wantErr  bool
	}{
		{name: "stdio", entry: `{"command":"npx","args":["-y","srv"],"cwd":"/work"}`, wantKind: mcp.KindStdio},
		{name: "httpUrl means http", entry: `{"httpUrl":"https://x/mcp","headers":{"A":"1"}}`, wantKind: mcp.KindHTTP, wantURL: "https://x/mcp"},
		{name: "url means sse", entry: `{"url":"https://x/sse"}`, wantKind: mcp.KindSSE, wantURL: "https://x/sse"},
		{name: "explicit type wins", entry: `{"type":"http","url":"https://x/mcp"}`, wantKind: mcp.KindHTTP, wantURL: "https://x/mcp"},
		{name: "empty entry", entry: `{}`, wantErr: true},
		{name: "null", entry: `null`, wantErr: true},
	}
	tr := NewMCPTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tr.FromEngine(json.RawMessage(tt.entry))
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromEngine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if spec.Kind() != tt.wantKind {
				t.Errorf("Kind() = %q, want %q", spec.Kind(), tt.wantKind)
			}
			if url, _, _ := spec.Remote(); url != tt.wantURL {
				t.Errorf("url = %q, want %q", url, tt.wantURL)
			}
		})
	}
}

func TestMCPTranslator_ToEngine(t *testing.T) {
	tests := []struct {
		name string
		spec func() (*mcp.Spec, error)
		want string
	}{
		{
			name: "stdio",
			spec: func() (*mcp.Spec, error) {
				return mcp.NewStdio(mcp.Stdio{
					Command: "npx",
					Args:    mcp.ArgList{"-y", "srv"},
					Env:     mcp.KeyValuesFromPairs(mcp.Pair{Key: "Z", Value: "1"}, mcp.Pair{Key: "A", Value: "2"}),
					Cwd:     "/work",
				})
			},
			want: `{"command":"npx","args":["-y","srv"],"env":{"Z":"1","A":"2"},"cwd":"/work"}`,
		},
		{
			name: "http",
			spec: func() (*mcp.Spec, error) { return mcp.NewHTTP("https://x/mcp", nil) },
			want: `{"httpUrl":"https://x/mcp"}`,
		},
		{
			name: "sse with headers",
			spec: func() (*mcp.Spec, error) {
				return mcp.NewSSE("https://x/sse", mcp.KeyValuesFromPairs(mcp.Pair{Key: "Authorization", Value: "Bearer t"}))
			},
			want: `{"url":"https://x/sse","headers":{"Authorization":"Bearer t"}}`,
		},
	}
	tr := NewMCPTranslator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.spec()
			if err != nil {
				t.Fatalf("building spec: %v", err)
			}
			got, err := tr.ToEngine(spec)
			if err != nil {
				t.Fatalf("ToEngine() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ToEngine() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMCPTranslator_RoundTripKeepsExtras(t *testing.T) {
	tr := NewMCPTranslator()
	in := `{"httpUrl":"https://x/mcp","timeout":30000,"trust":true}`

	spec, err := tr.FromEngine(json.RawMessage(in))
	if err != nil {
		t.Fatalf("FromEngine() error = %v", err)
	}
	out, err := tr.ToEngine(spec)
	if err != nil {
		t.Fatalf("ToEngine() error = %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}
