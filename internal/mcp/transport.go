package mcp

import (
	"slices"
	"strings"
)

// Kind is the transport discriminator stored in the "type" field.
type Kind string

// Transport kinds.
const (
	// KindStdio is a local process spoken to over stdin/stdout.
	KindStdio Kind = "stdio"

	// KindHTTP is a remote server using streamable HTTP.
	KindHTTP Kind = "http"

	// KindSSE is a remote server using Server-Sent Events.
	KindSSE Kind = "sse"
)

// Kinds returns every supported transport kind.
func Kinds() []Kind {
	return []Kind{KindStdio, KindHTTP, KindSSE}
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds(), k)
}

// IsRemote reports whether k is one of the URL-based kinds.
func (k Kind) IsRemote() bool {
	return k == KindHTTP || k == KindSSE
}

// Transport is one of *Stdio, *HTTP or *SSE. The set is closed.
type Transport interface {
	// Kind returns the transport discriminator.
	Kind() Kind

	validate() error
	clone() Transport
}

// Stdio describes a server launched as a local process.
type Stdio struct {
	// Command is the executable to run. Required.
	Command string

	// Args are passed to Command in order.
	Args ArgList

	// Cwd is the working directory of the process.
	Cwd string

	// Env holds extra environment variables.
	Env *KeyValues
}

// Kind implements Transport.
func (*Stdio) Kind() Kind { return KindStdio }

func (s *Stdio) validate() error {
	if strings.TrimSpace(s.Command) == "" {
		return &ValidationError{Field: "command", Message: "stdio server requires a command", Err: ErrMissingCommand}
	}
	return validateKeys("env", s.Env)
}

func (s *Stdio) clone() Transport {
	c := *s
	c.Args = slices.Clone(s.Args)
	c.Env = s.Env.Clone()
	return &c
}

// HTTP describes a remote server using streamable HTTP.
type HTTP struct {
	// URL is the server endpoint. Required.
	URL string

	// Headers are sent with every request.
	Headers *KeyValues
}

// Kind implements Transport.
func (*HTTP) Kind() Kind { return KindHTTP }

func (h *HTTP) validate() error { return validateRemote(KindHTTP, h.URL, h.Headers) }

func (h *HTTP) clone() Transport {
	c := *h
	c.Headers = h.Headers.Clone()
	return &c
}

// SSE describes a remote server using Server-Sent Events.
type SSE struct {
	// URL is the server endpoint. Required.
	URL string

	// Headers are sent with every request.
	Headers *KeyValues
}

// Kind implements Transport.
func (*SSE) Kind() Kind { return KindSSE }

func (s *SSE) validate() error { return validateRemote(KindSSE, s.URL, s.Headers) }

func (s *SSE) clone() Transport {
	c := *s
	c.Headers = s.Headers.Clone()
	return &c
}

func validateRemote(kind Kind, url string, headers *KeyValues) error {
	if strings.TrimSpace(url) == "" {
		return &ValidationError{Field: "url", Message: string(kind) + " server requires a URL", Err: ErrMissingURL}
	}
	return validateKeys("headers", headers)
}

func validateKeys(field string, kv *KeyValues) error {
	for _, k := range kv.Keys() {
		if strings.TrimSpace(k) == "" {
			return &ValidationError{Field: field, Message: "keys cannot be empty", Err: ErrEmptyKey}
		}
	}
	return nil
}
