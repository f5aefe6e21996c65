// Package validator reports every problem in a set of MCP server drafts at
// once, so an import or edit can show all of them before anything is saved.
package validator

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for validation failures not covered by package mcp.
var (
	// ErrEmptyConfig indicates the document has no servers defined.
	ErrEmptyConfig = errors.New("config has no servers")

	// ErrMissingServerID indicates a server stored under a blank id.
	ErrMissingServerID = errors.New("server id is required")

	// ErrInactiveField indicates a field of a transport other than the
	// active one. Such fields are dropped when the server is saved.
	ErrInactiveField = errors.New("field belongs to an inactive transport")
)

// Severity indicates whether a validation issue is an error or warning.
type Severity int

const (
	// SeverityError blocks the server from being saved.
	SeverityError Severity = iota

	// SeverityWarning does not prevent saving but may indicate a mistake.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError represents a single validation issue with context.
type ValidationError struct {
	// ServerID identifies which server has the issue.
	// Empty for document-level issues.
	ServerID string

	// Field identifies which field has the issue.
	Field string

	// Message is a human-readable description of the problem.
	Message string

	// Severity indicates whether this is an error or warning.
	Severity Severity

	// Err is the underlying sentinel error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	prefix := e.Severity.String()

	if e.ServerID != "" && e.Field != "" {
		return fmt.Sprintf("%s: server %q field %q: %s", prefix, e.ServerID, e.Field, e.Message)
	}
	if e.ServerID != "" {
		return fmt.Sprintf("%s: server %q: %s", prefix, e.ServerID, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", prefix, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasErrors returns true if any of the issues have error severity.
func HasErrors(errs []*ValidationError) bool {
	for _, err := range errs {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any of the issues have warning severity.
func HasWarnings(errs []*ValidationError) bool {
	for _, err := range errs {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only the issues with error severity.
func Errors(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityError)
}

// Warnings returns only the issues with warning severity.
func Warnings(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityWarning)
}

func filter(errs []*ValidationError, s Severity) []*ValidationError {
	var result []*ValidationError
	for _, err := range errs {
		if err.Severity == s {
			result = append(result, err)
		}
	}
	return result
}
