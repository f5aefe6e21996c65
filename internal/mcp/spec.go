package mcp

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Spec is a validated MCP server definition.
//
// Exactly one transport is active, and only that transport's fields are
// serialized. Fields the model does not know about are kept verbatim so a
// server read from disk can be written back without losing them.
type Spec struct {
	transport Transport
	extra     map[string]json.RawMessage
}

// New validates t and wraps it in a Spec. The transport is copied.
func New(t Transport) (*Spec, error) {
	if t == nil {
		return nil, ErrNilTransport
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &Spec{transport: t.clone()}, nil
}

// NewStdio builds a stdio server.
func NewStdio(s Stdio) (*Spec, error) {
	return New(&s)
}

// NewHTTP builds a streamable HTTP server.
func NewHTTP(url string, headers *KeyValues) (*Spec, error) {
	return New(&HTTP{URL: url, Headers: headers})
}

// NewSSE builds a Server-Sent Events server.
func NewSSE(url string, headers *KeyValues) (*Spec, error) {
	return New(&SSE{URL: url, Headers: headers})
}

// ParseSpec decodes and validates a serialized server.
func ParseSpec(data []byte) (*Spec, error) {
	d, err := DecodeDraft(data)
	if err != nil {
		return nil, err
	}
	return d.Spec()
}

// Kind returns the active transport kind.
func (s *Spec) Kind() Kind {
	return s.transport.Kind()
}

// Transport returns a copy of the active transport.
func (s *Spec) Transport() Transport {
	return s.transport.clone()
}

// Stdio returns a copy of the stdio transport when it is active.
func (s *Spec) Stdio() (*Stdio, bool) {
	t, ok := s.transport.(*Stdio)
	if !ok {
		return nil, false
	}
	return t.clone().(*Stdio), true
}

// Remote returns the URL and a copy of the headers of an http or sse
// server. ok is false for stdio servers.
func (s *Spec) Remote() (url string, headers *KeyValues, ok bool) {
	switch t := s.transport.(type) {
	case *HTTP:
		return t.URL, t.Headers.Clone(), true
	case *SSE:
		return t.URL, t.Headers.Clone(), true
	}
	return "", nil, false
}

// Endpoint returns a one-line description of where the server runs:
// the command line for stdio servers, the URL otherwise.
func (s *Spec) Endpoint() string {
	if t, ok := s.transport.(*Stdio); ok {
		return strings.Join(append([]string{t.Command}, t.Args...), " ")
	}
	url, _, _ := s.Remote()
	return url
}

// Extra returns a copy of the fields not modeled by Spec.
func (s *Spec) Extra() map[string]json.RawMessage {
	return cloneRaw(s.extra)
}

// WithExtra returns a copy of s carrying the given unmodeled fields.
// Keys that collide with modeled fields are ignored.
func (s *Spec) WithExtra(extra map[string]json.RawMessage) *Spec {
	c := s.Clone()
	c.extra = nil
	for k, v := range extra {
		if slices.Contains(knownFields, k) {
			continue
		}
		if c.extra == nil {
			c.extra = make(map[string]json.RawMessage)
		}
		c.extra[k] = slices.Clone(v)
	}
	return c
}

// Clone returns a deep copy.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	return &Spec{transport: s.transport.clone(), extra: cloneRaw(s.extra)}
}

// Equal reports whether two specs serialize identically.
func (s *Spec) Equal(other *Spec) bool {
	if s == nil || other == nil {
		return s == other
	}
	a, errA := s.MarshalJSON()
	b, errB := other.MarshalJSON()
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// MarshalJSON encodes the canonical form: "type" first, then the active
// transport's non-empty fields, then unmodeled fields in key order.
func (s *Spec) MarshalJSON() ([]byte, error) {
	if s == nil || s.transport == nil {
		return nil, ErrNilTransport
	}

	fields := []field{{"type", string(s.Kind())}}
	switch t := s.transport.(type) {
	case *Stdio:
		fields = append(fields, field{"command", t.Command})
		fields = appendStdioOptional(fields, t.Args, t.Cwd, t.Env)
	case *HTTP:
		fields = append(fields, field{"url", t.URL})
		fields = appendHeaders(fields, t.Headers)
	case *SSE:
		fields = append(fields, field{"url", t.URL})
		fields = appendHeaders(fields, t.Headers)
	}
	fields = appendExtra(fields, s.extra)
	return encodeObject(fields)
}

// UnmarshalJSON decodes and validates a serialized server. The receiver is
// only replaced when the whole document is valid.
func (s *Spec) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSpec(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// knownFields lists every modeled field of the serialized form.
var knownFields = []string{"type", "command", "args", "cwd", "env", "url", "headers"}

type field struct {
	key   string
	value any
}

func appendStdioOptional(fields []field, args []string, cwd string, env *KeyValues) []field {
	if len(args) > 0 {
		fields = append(fields, field{"args", args})
	}
	if cwd != "" {
		fields = append(fields, field{"cwd", cwd})
	}
	if env.Len() > 0 {
		fields = append(fields, field{"env", env})
	}
	return fields
}

func appendHeaders(fields []field, headers *KeyValues) []field {
	if headers.Len() > 0 {
		fields = append(fields, field{"headers", headers})
	}
	return fields
}

func appendExtra(fields []field, extra map[string]json.RawMessage) []field {
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		fields = append(fields, field{k, extra[k]})
	}
	return fields
}

// encodeObject writes fields as a JSON object in the given order.
func encodeObject(fields []field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding key %q", f.key)
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding field %q", f.key)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
