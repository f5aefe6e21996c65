package validator

import (
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/mcp"
)

// Option configures a Validator.
type Option func(*Validator)

// Validator checks MCP server drafts.
type Validator struct {
	// allowEmpty permits documents with no servers.
	// Default is false (at least one server required).
	allowEmpty bool
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithAllowEmpty configures whether documents with no servers are allowed.
func WithAllowEmpty(allow bool) Option {
	return func(v *Validator) {
		v.allowEmpty = allow
	}
}

// Validate checks every draft and returns all issues found, ordered by
// server id, or nil if there are none. Use [HasErrors] to tell blocking
// issues from warnings.
func (v *Validator) Validate(drafts map[string]*mcp.Draft) []*ValidationError {
	var errs []*ValidationError

	if !v.allowEmpty && len(drafts) == 0 {
		errs = append(errs, &ValidationError{
			Message:  "config has no servers",
			Severity: SeverityError,
			Err:      ErrEmptyConfig,
		})
	}

	for _, id := range slices.Sorted(maps.Keys(drafts)) {
		errs = append(errs, v.ValidateServer(id, drafts[id])...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateServer checks a single draft stored under id.
func (v *Validator) ValidateServer(id string, d *mcp.Draft) []*ValidationError {
	var errs []*ValidationError

	if strings.TrimSpace(id) == "" {
		errs = append(errs, &ValidationError{
			Field:    "id",
			Message:  "server id is required",
			Severity: SeverityError,
			Err:      ErrMissingServerID,
		})
	}

	if err := mcp.Validate(d); err != nil {
		errs = append(errs, fromModel(id, err))
	}
	if d == nil {
		return errs
	}

	return append(errs, v.inactiveFields(id, d)...)
}

// fromModel converts a model validation failure into a report entry.
func fromModel(id string, err error) *ValidationError {
	out := &ValidationError{
		ServerID: id,
		Message:  err.Error(),
		Severity: SeverityError,
		Err:      err,
	}
	var ve *mcp.ValidationError
	if errors.As(err, &ve) {
		out.Field = ve.Field
		out.Message = ve.Message
		out.Err = ve.Err
	}
	return out
}

// inactiveFields warns about populated fields that the active transport
// does not use.
func (v *Validator) inactiveFields(id string, d *mcp.Draft) []*ValidationError {
	kind := d.EffectiveKind()
	if !kind.Valid() {
		return nil
	}

	var fields []string
	if kind.IsRemote() {
		if strings.TrimSpace(d.Command) != "" {
			fields = append(fields, "command")
		}
		if len(d.Args) > 0 {
			fields = append(fields, "args")
		}
		if d.Cwd != "" {
			fields = append(fields, "cwd")
		}
		if d.Env.Len() > 0 {
			fields = append(fields, "env")
		}
	} else {
		if strings.TrimSpace(d.URL) != "" {
			fields = append(fields, "url")
		}
		if d.Headers.Len() > 0 {
			fields = append(fields, "headers")
		}
	}

	errs := make([]*ValidationError, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, &ValidationError{
			ServerID: id,
			Field:    f,
			Message:  "not used by " + string(kind) + " servers and will be dropped",
			Severity: SeverityWarning,
			Err:      ErrInactiveField,
		})
	}
	return errs
}
