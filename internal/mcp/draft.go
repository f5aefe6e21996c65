package mcp

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// Draft is the editable form of a server: every field of every transport
// is present, so switching Type while editing does not lose input.
// Drafts become Specs through Spec, which drops the inactive fields.
type Draft struct {
	Type    Kind
	Command string
	Args    ArgList
	Cwd     string
	Env     *KeyValues
	URL     string
	Headers *KeyValues

	// Extra holds fields not modeled here, preserved verbatim.
	Extra map[string]json.RawMessage
}

// DraftFromSpec opens a spec for editing.
func DraftFromSpec(s *Spec) *Draft {
	d := &Draft{Type: s.Kind(), Extra: s.Extra()}
	switch t := s.transport.(type) {
	case *Stdio:
		d.Command = t.Command
		d.Args = slices.Clone(t.Args)
		d.Cwd = t.Cwd
		d.Env = t.Env.Clone()
	case *HTTP:
		d.URL = t.URL
		d.Headers = t.Headers.Clone()
	case *SSE:
		d.URL = t.URL
		d.Headers = t.Headers.Clone()
	}
	return d
}

// EffectiveKind returns Type, or the kind implied by the populated fields
// when Type is empty: a command means stdio, a URL alone means http.
func (d *Draft) EffectiveKind() Kind {
	if d.Type != "" {
		return d.Type
	}
	if strings.TrimSpace(d.Command) == "" && strings.TrimSpace(d.URL) != "" {
		return KindHTTP
	}
	return KindStdio
}

// Validate checks that d can become a Spec. It returns nil or a
// *ValidationError naming the offending field.
func Validate(d *Draft) error {
	if d == nil {
		return &ValidationError{Message: "server is nil", Err: ErrNilTransport}
	}
	t, err := d.transport()
	if err != nil {
		return err
	}
	return t.validate()
}

// Spec validates the draft and returns the canonical spec. Fields of the
// inactive transports are dropped and empty collections are omitted.
func (d *Draft) Spec() (*Spec, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	t, _ := d.transport()
	s := &Spec{transport: t}
	if len(d.Extra) > 0 {
		s = s.WithExtra(d.Extra)
	}
	return s, nil
}

// Clone returns a deep copy.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Args = slices.Clone(d.Args)
	c.Env = d.Env.Clone()
	c.Headers = d.Headers.Clone()
	c.Extra = cloneRaw(d.Extra)
	return &c
}

func (d *Draft) transport() (Transport, error) {
	switch d.EffectiveKind() {
	case KindStdio:
		return &Stdio{
			Command: strings.TrimSpace(d.Command),
			Args:    slices.Clone(d.Args),
			Cwd:     d.Cwd,
			Env:     d.Env.Clone(),
		}, nil
	case KindHTTP:
		return &HTTP{URL: strings.TrimSpace(d.URL), Headers: d.Headers.Clone()}, nil
	case KindSSE:
		return &SSE{URL: strings.TrimSpace(d.URL), Headers: d.Headers.Clone()}, nil
	}
	return nil, &ValidationError{
		Field:   "type",
		Message: "type must be one of stdio, http, sse, got " + string(d.Type),
		Err:     ErrInvalidType,
	}
}

// EncodeDraft renders the raw-text view of a draft. Every populated field
// is written, including those of inactive transports, so decoding the
// result gives back the same draft (with Type inferred if it was empty).
func EncodeDraft(d *Draft) ([]byte, error) {
	var fields []field
	if d.Type != "" {
		fields = append(fields, field{"type", string(d.Type)})
	}
	if d.Command != "" {
		fields = append(fields, field{"command", d.Command})
	}
	fields = appendStdioOptional(fields, d.Args, d.Cwd, d.Env)
	if d.URL != "" {
		fields = append(fields, field{"url", d.URL})
	}
	fields = appendHeaders(fields, d.Headers)
	fields = appendExtra(fields, d.Extra)

	compact, err := encodeObject(fields)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, &DecodeError{Err: err}
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// DecodeDraft parses the raw-text view of a server. It never validates
// transport requirements, so incomplete servers can still be edited, but a
// malformed document or field yields a *DecodeError and no draft.
// A missing "type" is inferred from the populated fields.
func DecodeDraft(data []byte) (*Draft, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if raw == nil {
		return nil, &DecodeError{Err: errNotObject}
	}

	d := &Draft{}
	var typ string
	targets := []struct {
		key string
		dst any
	}{
		{"type", &typ},
		{"command", &d.Command},
		{"args", &d.Args},
		{"cwd", &d.Cwd},
		{"env", &d.Env},
		{"url", &d.URL},
		{"headers", &d.Headers},
	}
	for _, t := range targets {
		v, ok := raw[t.key]
		if !ok {
			continue
		}
		delete(raw, t.key)
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(v, t.dst); err != nil {
			return nil, &DecodeError{Field: t.key, Err: err}
		}
	}

	d.Type = Kind(typ)
	if d.Type == "" {
		d.Type = d.EffectiveKind()
	}
	if d.Env.Len() == 0 {
		d.Env = nil
	}
	if d.Headers.Len() == 0 {
		d.Headers = nil
	}
	if len(d.Args) == 0 {
		d.Args = nil
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return d, nil
}

// ReplaceFromJSON parses data and, only on success, replaces the whole
// draft with the result.
func (d *Draft) ReplaceFromJSON(data []byte) error {
	parsed, err := DecodeDraft(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
