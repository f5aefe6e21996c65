package config

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidEngine indicates an unrecognized engine name.
	ErrInvalidEngine = errors.New("invalid engine")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidRetention indicates a negative backup retention.
	ErrInvalidRetention = errors.New("backup retention must be >= 0")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, engine := range cfg.DefaultEngines {
		if !paths.ValidEngine(engine) {
			errs = append(errs, &EngineError{Engine: engine, Err: ErrInvalidEngine})
		}
	}

	for engine, o := range cfg.Engines {
		if !paths.ValidEngine(engine) {
			errs = append(errs, &EngineError{Engine: engine, Err: ErrInvalidEngine})
			continue
		}
		if err := validatePath(o.ConfigDir); err != nil {
			errs = append(errs, &PathError{
				Field: "engines." + engine + ".config_dir",
				Path:  o.ConfigDir,
				Err:   err,
			})
		}
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, ErrInvalidRetention)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty means "use default".
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// EngineError represents an error for a specific engine.
type EngineError struct {
	Engine string
	Err    error
}

func (e *EngineError) Error() string {
	return e.Err.Error() + ": " + e.Engine
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
