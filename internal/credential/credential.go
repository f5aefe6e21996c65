// Package credential reads and writes the flat credential payload stored in
// Codex's auth.json.
package credential

import (
	"bytes"
	"encoding/json"
	"maps"

	"github.com/cockroachdb/errors"
)

// KeyAPIKey is the canonical credential key.
const KeyAPIKey = "OPENAI_API_KEY"

// Legacy alias keys accepted on read, in precedence order after KeyAPIKey.
const (
	KeyLegacyOpenAI = "OPENAI_KEY"
	KeyLegacyAPIKey = "api_key"
)

// apiKeyPrecedence is the order in which ExtractAPIKey probes keys.
var apiKeyPrecedence = []string{KeyAPIKey, KeyLegacyOpenAI, KeyLegacyAPIKey}

// Payload maps credential keys to secret values.
type Payload map[string]string

// Generate returns a payload holding only the canonical API key.
// An empty key is kept as an empty string.
func Generate(apiKey string) Payload {
	return Payload{KeyAPIKey: apiKey}
}

// ExtractAPIKey returns the first non-empty value among the canonical key
// and its legacy aliases, or "" when none is set.
func ExtractAPIKey(p Payload) string {
	for _, key := range apiKeyPrecedence {
		if v := p[key]; v != "" {
			return v
		}
	}
	return ""
}

// Merge returns a new payload with overlay applied on top of base.
// Neither argument is modified.
func Merge(base, overlay Payload) Payload {
	out := make(Payload, len(base)+len(overlay))
	maps.Copy(out, base)
	maps.Copy(out, overlay)
	return out
}

// Clone returns a copy of the payload. A nil payload clones to nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Parse decodes an auth.json document. Keys whose values are not strings
// are dropped; empty input yields an empty payload.
func Parse(data []byte) (Payload, error) {
	out := Payload{}
	if len(data) == 0 {
		return out, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing credential payload")
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

// Overlay writes p over the auth.json document doc and returns the result.
// Members of doc that p does not name are kept as they are, including
// non-string values such as a ChatGPT login's token object. Setting the
// canonical key drops the legacy aliases so they cannot shadow it.
func Overlay(doc []byte, p Payload) ([]byte, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(doc)) > 0 {
		if err := json.Unmarshal(doc, &raw); err != nil {
			return nil, errors.Wrap(err, "parsing credential payload")
		}
		if raw == nil {
			raw = map[string]json.RawMessage{}
		}
	}
	if _, ok := p[KeyAPIKey]; ok {
		delete(raw, KeyLegacyOpenAI)
		delete(raw, KeyLegacyAPIKey)
	}
	for k, v := range p {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s", k)
		}
		raw[k] = enc
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling credential payload")
	}
	return append(data, '\n'), nil
}
