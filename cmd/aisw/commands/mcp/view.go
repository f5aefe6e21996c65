package mcp

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/aisw/internal/mcp"
	"github.com/thoreinstein/aisw/internal/redact"
)

// serverView is the display form of a server in JSON and YAML output.
type serverView struct {
	ID      string            `json:"id" yaml:"id"`
	Type    mcp.Kind          `json:"type" yaml:"type"`
	Command string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Cwd     string            `json:"cwd,omitempty" yaml:"cwd,omitempty"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Extra   map[string]any    `json:"extra,omitempty" yaml:"extra,omitempty"`
}

func newServerView(id string, s *mcp.Spec, showSecrets bool) serverView {
	v := serverView{ID: id, Type: s.Kind()}
	if st, ok := s.Stdio(); ok {
		v.Command = st.Command
		v.Args = st.Args
		v.Cwd = st.Cwd
		v.Env = maskPairs(st.Env, showSecrets)
	}
	if url, headers, ok := s.Remote(); ok {
		v.URL = url
		v.Headers = maskPairs(headers, showSecrets)
		if !showSecrets {
			v.URL = redact.URL(url)
		}
	}
	for key, raw := range s.Extra() {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			continue
		}
		if v.Extra == nil {
			v.Extra = make(map[string]any)
		}
		v.Extra[key] = decoded
	}
	return v
}

func maskPairs(kv *mcp.KeyValues, showSecrets bool) map[string]string {
	m := kv.Map()
	if showSecrets || m == nil {
		return m
	}
	return redact.Pairs(m)
}

// writeDetail renders one server as indented text.
func writeDetail(w io.Writer, s *mcp.Spec, showSecrets bool) {
	fmt.Fprintf(w, "  %-9s %s\n", "Type:", s.Kind())
	if st, ok := s.Stdio(); ok {
		fmt.Fprintf(w, "  %-9s %s\n", "Command:", st.Command)
		if len(st.Args) > 0 {
			fmt.Fprintf(w, "  %-9s %s\n", "Args:", strings.Join(st.Args, " "))
		}
		if st.Cwd != "" {
			fmt.Fprintf(w, "  %-9s %s\n", "Cwd:", st.Cwd)
		}
		writePairs(w, "Env:", st.Env, showSecrets)
	}
	if url, headers, ok := s.Remote(); ok {
		if !showSecrets {
			url = redact.URL(url)
		}
		fmt.Fprintf(w, "  %-9s %s\n", "URL:", url)
		writePairs(w, "Headers:", headers, showSecrets)
	}
	extra := s.Extra()
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		fmt.Fprintf(w, "  %s\n", dimColor.Sprintf("%s: %s", key, extra[key]))
	}
}

func writePairs(w io.Writer, label string, kv *mcp.KeyValues, showSecrets bool) {
	if kv.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", label)
	for _, p := range kv.Pairs() {
		value := p.Value
		if !showSecrets {
			value = redact.Field(p.Key, p.Value)
		}
		fmt.Fprintf(w, "    %s=%s\n", p.Key, value)
	}
}

// truncate truncates a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
