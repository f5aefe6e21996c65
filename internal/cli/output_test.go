package cli

import (
	"bytes"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		json    bool
		yaml    bool
		want    Format
		wantErr bool
	}{
		{name: "default", want: FormatText},
		{name: "json", json: true, want: FormatJSON},
		{name: "yaml", yaml: true, want: FormatYAML},
		{name: "both", json: true, yaml: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.json, tt.yaml)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	v := struct {
		ID    string   `json:"id" yaml:"id"`
		Hosts []string `json:"hosts" yaml:"hosts"`
	}{ID: "kimi", Hosts: []string{"a"}}

	tests := []struct {
		format  Format
		want    string
		wantErr bool
	}{
		{format: FormatJSON, want: "{\n  \"id\": \"kimi\",\n  \"hosts\": [\n    \"a\"\n  ]\n}\n"},
		{format: FormatYAML, want: "id: kimi\nhosts:\n  - a\n"},
		{format: FormatText, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, tt.format, v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Encode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && buf.String() != tt.want {
				t.Errorf("Encode() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
