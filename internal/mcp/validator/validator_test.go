package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/thoreinstein/aisw/internal/mcp"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name          string
		drafts        map[string]*mcp.Draft
		allowEmpty    bool
		wantErrCount  int
		wantWarnCount int
		wantServerID  string
		wantField     string
		wantErr       error
	}{
		{
			name: "valid stdio server",
			drafts: map[string]*mcp.Draft{
				"github": {Type: mcp.KindStdio, Command: "npx"},
			},
		},
		{
			name: "valid http server with inferred type",
			drafts: map[string]*mcp.Draft{
				"remote": {URL: "https://api.example.com/mcp"},
			},
		},
		{
			name:         "empty document",
			drafts:       map[string]*mcp.Draft{},
			wantErrCount: 1,
			wantErr:      ErrEmptyConfig,
		},
		{
			name:       "empty document allowed",
			drafts:     nil,
			allowEmpty: true,
		},
		{
			name: "stdio missing command",
			drafts: map[string]*mcp.Draft{
				"broken": {Type: mcp.KindStdio, Command: "  "},
			},
			wantErrCount: 1,
			wantServerID: "broken",
			wantField:    "command",
			wantErr:      mcp.ErrMissingCommand,
		},
		{
			name: "sse missing url",
			drafts: map[string]*mcp.Draft{
				"events": {Type: mcp.KindSSE},
			},
			wantErrCount: 1,
			wantServerID: "events",
			wantField:    "url",
			wantErr:      mcp.ErrMissingURL,
		},
		{
			name: "invalid type",
			drafts: map[string]*mcp.Draft{
				"ws": {Type: "websocket", URL: "wss://x"},
			},
			wantErrCount: 1,
			wantField:    "type",
			wantErr:      mcp.ErrInvalidType,
		},
		{
			name: "blank id",
			drafts: map[string]*mcp.Draft{
				" ": {Command: "npx"},
			},
			wantErrCount: 1,
			wantField:    "id",
			wantErr:      ErrMissingServerID,
		},
		{
			name: "http with leftover stdio fields",
			drafts: map[string]*mcp.Draft{
				"mixed": {
					Type:    mcp.KindHTTP,
					URL:     "https://x",
					Command: "npx",
					Args:    mcp.ArgList{"-y"},
				},
			},
			wantWarnCount: 2,
			wantServerID:  "mixed",
			wantErr:       ErrInactiveField,
		},
		{
			name: "stdio with leftover headers",
			drafts: map[string]*mcp.Draft{
				"local": {
					Command: "npx",
					Headers: mcp.KeyValuesFromPairs(mcp.Pair{Key: "Authorization", Value: "x"}),
				},
			},
			wantWarnCount: 1,
			wantField:     "headers",
			wantErr:       ErrInactiveField,
		},
		{
			name: "errors from several servers are all reported",
			drafts: map[string]*mcp.Draft{
				"a": {Type: mcp.KindStdio},
				"b": {Type: mcp.KindHTTP},
				"c": {Command: "ok"},
			},
			wantErrCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(WithAllowEmpty(tt.allowEmpty))
			got := v.Validate(tt.drafts)

			errs := Errors(got)
			warns := Warnings(got)
			if len(errs) != tt.wantErrCount {
				t.Errorf("error count = %d, want %d: %v", len(errs), tt.wantErrCount, got)
			}
			if len(warns) != tt.wantWarnCount {
				t.Errorf("warning count = %d, want %d: %v", len(warns), tt.wantWarnCount, got)
			}
			if len(got) == 0 {
				return
			}

			first := got[0]
			if tt.wantServerID != "" && first.ServerID != tt.wantServerID {
				t.Errorf("ServerID = %q, want %q", first.ServerID, tt.wantServerID)
			}
			if tt.wantField != "" && first.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", first.Field, tt.wantField)
			}
			if tt.wantErr != nil && !errors.Is(first, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", first, tt.wantErr)
			}
		})
	}
}

func TestValidator_OrderedByServerID(t *testing.T) {
	got := New().Validate(map[string]*mcp.Draft{
		"zeta":  {Type: mcp.KindStdio},
		"alpha": {Type: mcp.KindStdio},
	})
	if len(got) != 2 {
		t.Fatalf("got %d issues, want 2", len(got))
	}
	if got[0].ServerID != "alpha" || got[1].ServerID != "zeta" {
		t.Errorf("order = %q, %q", got[0].ServerID, got[1].ServerID)
	}
}

func TestValidator_NilDraft(t *testing.T) {
	got := New().ValidateServer("x", nil)
	if !HasErrors(got) {
		t.Fatal("expected an error for a nil draft")
	}
	if !errors.Is(got[0], mcp.ErrNilTransport) {
		t.Errorf("error = %v, want ErrNilTransport", got[0])
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "server and field",
			err:  &ValidationError{ServerID: "gh", Field: "url", Message: "bad", Severity: SeverityWarning},
			want: `warning: server "gh" field "url": bad`,
		},
		{
			name: "server only",
			err:  &ValidationError{ServerID: "gh", Message: "bad"},
			want: `error: server "gh": bad`,
		},
		{
			name: "field only",
			err:  &ValidationError{Field: "id", Message: "bad"},
			want: `error: field "id": bad`,
		},
		{
			name: "message only",
			err:  &ValidationError{Message: "config has no servers"},
			want: `error: config has no servers`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasWarnings(t *testing.T) {
	errs := []*ValidationError{{Severity: SeverityError}}
	if HasWarnings(errs) {
		t.Error("HasWarnings() = true with only errors")
	}
	errs = append(errs, &ValidationError{Severity: SeverityWarning})
	if !HasWarnings(errs) {
		t.Error("HasWarnings() = false with a warning")
	}
	if !strings.Contains(SeverityWarning.String(), "warn") {
		t.Errorf("SeverityWarning.String() = %q", SeverityWarning.String())
	}
}
