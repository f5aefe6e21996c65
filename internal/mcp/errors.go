package mcp

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for server validation.
var (
	// ErrMissingCommand indicates a stdio server without a command.
	ErrMissingCommand = errors.New("missing command")

	// ErrMissingURL indicates an http or sse server without a URL.
	ErrMissingURL = errors.New("missing url")

	// ErrInvalidType indicates an unrecognized transport type.
	ErrInvalidType = errors.New("invalid transport type")

	// ErrNilTransport indicates a spec was built without a transport.
	ErrNilTransport = errors.New("transport is required")

	// ErrUnsupportedTransport indicates an engine that cannot store the
	// server's transport kind.
	ErrUnsupportedTransport = errors.New("transport not supported by engine")

	errNotObject = errors.New("server must be a JSON object")
)

// ValidationError identifies the field that blocks a server from being
// persisted.
type ValidationError struct {
	// Field names the offending field as it appears in the serialized form.
	Field string

	// Message is a human-readable description.
	Message string

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DecodeError reports a serialized server that could not be parsed.
// Nothing is applied when it is returned.
type DecodeError struct {
	// Field is the field that failed to decode, empty for document-level
	// failures.
	Field string

	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decoding field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decoding server: %v", e.Err)
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
