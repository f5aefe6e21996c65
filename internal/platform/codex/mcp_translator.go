package codex

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/mcp"
)

// Codex spells the canonical "headers" field as "http_headers".
const (
	codexHeaders     = "http_headers"
	canonicalHeaders = "headers"
)

// MCPTranslator converts between canonical specs and [mcp_servers.<id>] tables.
//
// Codex tables have no transport key. "command", "args", "env", "cwd" make
// a stdio server and "url", "http_headers" a streamable HTTP one. Codex has
// no SSE transport. Other keys (bearer_token_env_var, enabled,
// startup_timeout_sec, ...) are kept.
type MCPTranslator struct{}

// NewMCPTranslator creates a new Codex MCP translator.
func NewMCPTranslator() *MCPTranslator {
	return &MCPTranslator{}
}

// FromEngine decodes a server table. A table without "type" is inferred
// from its fields; one with "type" is accepted as written by older tools.
func (t *MCPTranslator) FromEngine(table map[string]any) (*mcp.Spec, error) {
	canonical := make(map[string]any, len(table))
	for k, v := range table {
		canonical[k] = v
	}
	if h, ok := canonical[codexHeaders]; ok {
		delete(canonical, codexHeaders)
		canonical[canonicalHeaders] = h
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		return nil, errors.Wrap(err, "encoding codex server")
	}
	return mcp.ParseSpec(data)
}

// ToEngine encodes spec as a server table. SSE servers are rejected with
// mcp.ErrUnsupportedTransport.
func (t *MCPTranslator) ToEngine(spec *mcp.Spec) (map[string]any, error) {
	if spec.Kind() == mcp.KindSSE {
		return nil, errors.Wrap(mcp.ErrUnsupportedTransport, "codex has no sse transport, use http")
	}
	data, err := spec.MarshalJSON()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var table map[string]any
	if err := dec.Decode(&table); err != nil {
		return nil, errors.Wrap(err, "decoding canonical server")
	}
	delete(table, "type")
	for k, v := range table {
		table[k] = tomlValue(v)
	}
	if h, ok := table[canonicalHeaders]; ok {
		delete(table, canonicalHeaders)
		table[codexHeaders] = h
	}
	return table, nil
}

// tomlValue turns JSON numbers into TOML integers or floats.
func tomlValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, e := range x {
			x[k] = tomlValue(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = tomlValue(e)
		}
		return x
	default:
		return v
	}
}
