// Package doctor provides diagnostic checks for the engine files aisw edits.
package doctor

// Severity indicates the importance level of a check result.
type Severity int

const (
	// SeverityPass indicates the check passed without issues.
	SeverityPass Severity = iota

	// SeverityInfo indicates informational output, not a problem.
	SeverityInfo

	// SeverityWarning indicates a potential issue that doesn't prevent operation.
	SeverityWarning

	// SeverityError indicates a problem that prevents proper operation.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult represents the outcome of a single diagnostic check.
type CheckResult struct {
	// Name is the identifier for this check.
	Name string `json:"name" yaml:"name"`

	// Category groups related checks (e.g., "engine", "config", "mcp").
	Category string `json:"category" yaml:"category"`

	// Status indicates the severity of the check result.
	Status Severity `json:"status" yaml:"status"`

	// Message describes the check outcome.
	Message string `json:"message" yaml:"message"`

	// Details contains additional context about the check result.
	// Keys and values depend on the specific check. Secret values are
	// masked before they are stored here.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Fixable indicates whether aisw can fix this issue with --fix.
	Fixable bool `json:"fixable,omitempty" yaml:"fixable,omitempty"`

	// FixHint provides guidance on how to resolve the issue.
	FixHint string `json:"fix_hint,omitempty" yaml:"fix_hint,omitempty"`
}

// Summary aggregates counts of check results by severity.
type Summary struct {
	Passed   int `json:"passed" yaml:"passed"`
	Info     int `json:"info" yaml:"info"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
}
