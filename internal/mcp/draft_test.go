package mcp

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDraft_EffectiveKind(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  Kind
	}{
		{name: "explicit wins", draft: Draft{Type: KindSSE, Command: "npx"}, want: KindSSE},
		{name: "command implies stdio", draft: Draft{Command: "npx", URL: "https://x"}, want: KindStdio},
		{name: "url implies http", draft: Draft{URL: "https://x"}, want: KindHTTP},
		{name: "empty defaults to stdio", draft: Draft{}, want: KindStdio},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.EffectiveKind(); got != tt.want {
				t.Errorf("EffectiveKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   *Draft
		wantErr error
	}{
		{name: "nil draft", draft: nil, wantErr: ErrNilTransport},
		{name: "stdio missing command", draft: &Draft{Type: KindStdio}, wantErr: ErrMissingCommand},
		{name: "http missing url", draft: &Draft{Type: KindHTTP, Command: "npx"}, wantErr: ErrMissingURL},
		{name: "unknown type", draft: &Draft{Type: "websocket", URL: "wss://x"}, wantErr: ErrInvalidType},
		{name: "empty header key", draft: &Draft{Type: KindSSE, URL: "https://x", Headers: KeyValuesFromPairs(Pair{" ", "v"})}, wantErr: ErrEmptyKey},
		{name: "stdio ok with leftover url", draft: &Draft{Type: KindStdio, Command: "npx", URL: "https://x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.draft)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDraft_SwitchingTypeKeepsInput(t *testing.T) {
	d := &Draft{
		Type:    KindStdio,
		Command: "npx",
		Args:    ArgList{"-y", "srv"},
		Env:     KeyValuesFromPairs(Pair{"TOKEN", "t"}),
	}

	d.Type = KindHTTP
	if err := Validate(d); !errors.Is(err, ErrMissingURL) {
		t.Fatalf("Validate() error = %v, want ErrMissingURL", err)
	}
	d.URL = "https://example.com/mcp"
	s, err := d.Spec()
	if err != nil {
		t.Fatalf("Spec() error = %v", err)
	}
	if s.Kind() != KindHTTP {
		t.Errorf("Kind() = %q, want http", s.Kind())
	}

	d.Type = KindStdio
	s, err = d.Spec()
	if err != nil {
		t.Fatalf("Spec() after switching back error = %v", err)
	}
	st, _ := s.Stdio()
	if st.Command != "npx" || !reflect.DeepEqual([]string(st.Args), []string{"-y", "srv"}) {
		t.Errorf("stdio fields lost while switching type: %+v", st)
	}
}

func TestDraft_SpecTrimsRequiredFields(t *testing.T) {
	d := &Draft{Type: KindSSE, URL: "  https://x/sse \n"}
	s, err := d.Spec()
	if err != nil {
		t.Fatalf("Spec() error = %v", err)
	}
	if url, _, _ := s.Remote(); url != "https://x/sse" {
		t.Errorf("url = %q, want trimmed", url)
	}
}

func TestDraftFromSpec_RoundTrip(t *testing.T) {
	s, _ := ParseSpec([]byte(`{"type":"stdio","command":"uvx","args":["srv"],"env":{"B":"2","A":"1"},"timeout":10}`))
	d := DraftFromSpec(s)
	back, err := d.Spec()
	if err != nil {
		t.Fatalf("Spec() error = %v", err)
	}
	if !s.Equal(back) {
		a, _ := s.MarshalJSON()
		b, _ := back.MarshalJSON()
		t.Errorf("round trip mismatch:\n got %s\nwant %s", b, a)
	}
}

func TestEncodeDraft_KeepsInactiveFields(t *testing.T) {
	d := &Draft{
		Type:    KindHTTP,
		Command: "npx",
		URL:     "https://x",
	}
	out, err := EncodeDraft(d)
	if err != nil {
		t.Fatalf("EncodeDraft() error = %v", err)
	}
	text := string(out)
	for _, want := range []string{`"type": "http"`, `"command": "npx"`, `"url": "https://x"`} {
		if !strings.Contains(text, want) {
			t.Errorf("EncodeDraft() missing %s in:\n%s", want, text)
		}
	}
	if !strings.HasSuffix(text, "}\n") {
		t.Error("EncodeDraft() should end with a newline")
	}

	back, err := DecodeDraft(out)
	if err != nil {
		t.Fatalf("DecodeDraft() error = %v", err)
	}
	if back.Type != KindHTTP || back.Command != "npx" || back.URL != "https://x" {
		t.Errorf("DecodeDraft() = %+v", back)
	}
}

func TestDecodeDraft(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		wantField string
		check     func(t *testing.T, d *Draft)
	}{
		{
			name:    "not json",
			input:   `{"command": `,
			wantErr: true,
		},
		{
			name:    "array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "null document",
			input:   `null`,
			wantErr: true,
		},
		{
			name:      "args wrong type",
			input:     `{"command":"npx","args":"-y"}`,
			wantErr:   true,
			wantField: "args",
		},
		{
			name:      "env value not a string",
			input:     `{"command":"npx","env":{"A":1}}`,
			wantErr:   true,
			wantField: "env",
		},
		{
			name:  "incomplete server still decodes",
			input: `{"type":"stdio"}`,
			check: func(t *testing.T, d *Draft) {
				t.Helper()
				if d.Type != KindStdio || d.Command != "" {
					t.Errorf("draft = %+v", d)
				}
			},
		},
		{
			name:  "type inferred from url",
			input: `{"url":"https://x"}`,
			check: func(t *testing.T, d *Draft) {
				t.Helper()
				if d.Type != KindHTTP {
					t.Errorf("Type = %q, want http", d.Type)
				}
			},
		},
		{
			name:  "null fields ignored",
			input: `{"command":"npx","args":null,"env":null}`,
			check: func(t *testing.T, d *Draft) {
				t.Helper()
				if d.Args != nil || d.Env != nil {
					t.Errorf("null fields decoded as %v %v", d.Args, d.Env)
				}
			},
		},
		{
			name:  "unknown fields kept",
			input: `{"command":"npx","disabled":true}`,
			check: func(t *testing.T, d *Draft) {
				t.Helper()
				if string(d.Extra["disabled"]) != "true" {
					t.Errorf("Extra = %v", d.Extra)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DecodeDraft([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("DecodeDraft() expected error")
				}
				if d != nil {
					t.Error("DecodeDraft() returned a draft alongside an error")
				}
				var de *DecodeError
				if !errors.As(err, &de) {
					t.Fatalf("error type = %T, want *DecodeError", err)
				}
				if de.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", de.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDraft() error = %v", err)
			}
			tt.check(t, d)
		})
	}
}

func TestDraft_ReplaceFromJSON(t *testing.T) {
	d := &Draft{Type: KindStdio, Command: "orig", Args: ArgList{"a"}}

	if err := d.ReplaceFromJSON([]byte(`{"command":"new","args":[1]}`)); err == nil {
		t.Fatal("ReplaceFromJSON() expected error")
	}
	if d.Command != "orig" || len(d.Args) != 1 {
		t.Errorf("failed ReplaceFromJSON() modified draft: %+v", d)
	}

	if err := d.ReplaceFromJSON([]byte(`{"type":"sse","url":"https://x"}`)); err != nil {
		t.Fatalf("ReplaceFromJSON() error = %v", err)
	}
	if d.Type != KindSSE || d.Command != "" || d.Args != nil {
		t.Errorf("ReplaceFromJSON() did not replace the whole draft: %+v", d)
	}
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	d := &Draft{Command: "npx", Args: ArgList{"a"}, Env: KeyValuesFromPairs(Pair{"K", "V"})}
	c := d.Clone()
	c.Args[0] = "b"
	c.Env.Set("K", "changed")
	if d.Args[0] != "a" {
		t.Error("Clone() shares args")
	}
	if v, _ := d.Env.Get("K"); v != "V" {
		t.Error("Clone() shares env")
	}
}

func FuzzDecodeEncodeDraft(f *testing.F) {
	for _, s := range []string{
		`{"command":"npx","args":["-y","srv"],"env":{"B":"2","A":"1"}}`,
		`{"type":"http","url":"https://x/mcp","headers":{"Authorization":"Bearer t"}}`,
		`{"type":"sse","command":"left over","url":""}`,
		`{"type":"","timeout":30,"nested":{"a":[1,2.5,"<"]}}`,
		`{"type":null,"args":null}`,
		`{}`,
	} {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		d, err := DecodeDraft(data)
		if err != nil {
			return
		}
		enc, err := EncodeDraft(d)
		if err != nil {
			t.Fatalf("EncodeDraft() error = %v", err)
		}
		back, err := DecodeDraft(enc)
		if err != nil {
			t.Fatalf("DecodeDraft(EncodeDraft()) error = %v\n%s", err, enc)
		}
		again, err := EncodeDraft(back)
		if err != nil {
			t.Fatalf("EncodeDraft() second pass error = %v", err)
		}
		if string(again) != string(enc) {
			t.Errorf("encoding not stable:\n%s\nvs\n%s", enc, again)
		}

		// Extra values are compared through the encoding above since
		// whitespace inside them is not kept.
		d.Extra, back.Extra = nil, nil
		if !reflect.DeepEqual(d, back) {
			t.Errorf("round trip changed draft:\n got %#v\nwant %#v", back, d)
		}
	})
}
