package gemini

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/thoreinstein/aisw/internal/mcp"
)

// Gemini transport keys.
const (
	keyHTTPURL = "httpUrl"
	keyURL     = "url"
	keyCommand = "command"
	keyType    = "type"
)

// MCPTranslator converts between canonical specs and Gemini CLI entries.
type MCPTranslator struct{}

// NewMCPTranslator creates a new Gemini MCP translator.
func NewMCPTranslator() *MCPTranslator {
	return &MCPTranslator{}
}

// FromEngine decodes a Gemini entry.
//
// Mapping:
//   - "httpUrl" → http transport with that URL
//   - "url" without a command → sse transport
//   - "command" → stdio transport
//
// Unknown fields such as "timeout" or "trust" are kept.
func (t *MCPTranslator) FromEngine(entry json.RawMessage) (*mcp.Spec, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, errors.Wrap(err, "parsing gemini server")
	}
	if fields == nil {
		return nil, errors.New("gemini server is null")
	}

	_, typed := fields[keyType]
	if httpURL, ok := fields[keyHTTPURL]; ok {
		delete(fields, keyHTTPURL)
		fields[keyURL] = httpURL
		if !typed {
			fields[keyType] = json.RawMessage(`"http"`)
		}
	} else if _, hasURL := fields[keyURL]; hasURL && !typed {
		if _, hasCommand := fields[keyCommand]; !hasCommand {
			fields[keyType] = json.RawMessage(`"sse"`)
		}
	}

	canonical, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.Wrap(err, "encoding gemini server")
	}
	return mcp.ParseSpec(canonical)
}

// ToEngine encodes spec as a Gemini entry.
func (t *MCPTranslator) ToEngine(spec *mcp.Spec) (json.RawMessage, error) {
	out := orderedmap.New[string, any]()

	switch spec.Kind() {
	case mcp.KindStdio:
		st, _ := spec.Stdio()
		out.Set(keyCommand, st.Command)
		if len(st.Args) > 0 {
			out.Set("args", st.Args)
		}
		if st.Env.Len() > 0 {
			out.Set("env", st.Env)
		}
		if st.Cwd != "" {
			out.Set("cwd", st.Cwd)
		}
	case mcp.KindHTTP, mcp.KindSSE:
		url, headers, _ := spec.Remote()
		key := keyURL
		if spec.Kind() == mcp.KindHTTP {
			key = keyHTTPURL
		}
		out.Set(key, url)
		if headers.Len() > 0 {
			out.Set("headers", headers)
		}
	}

	extra := spec.Extra()
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if k == keyHTTPURL {
			continue
		}
		out.Set(k, extra[k])
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encoding gemini server")
	}
	return data, nil
}
