package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/lod"
	"github.com/thoreinstein/meshkit/internal/paths"
	"github.com/thoreinstein/meshkit/internal/rename"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrOutOfRange indicates a numeric setting is outside its bounds.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidValue indicates an enumerated setting has an unknown value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = paths.ErrInvalidPath
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	field := func(name string, value any, err error) {
		errs = append(errs, &FieldError{Field: name, Value: value, Err: err})
	}

	// Version must be >= 1
	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.LOD.Count < lod.MinCount || cfg.LOD.Count > lod.MaxCount {
		field("lod.count", cfg.LOD.Count, ErrOutOfRange)
	}
	if cfg.LOD.DecimateStep < lod.MinStep || cfg.LOD.DecimateStep > lod.MaxStep {
		field("lod.decimate_step", cfg.LOD.DecimateStep, ErrOutOfRange)
	}
	if _, err := lod.ParseDecimateType(cfg.LOD.DecimateType); err != nil {
		field("lod.decimate_type", cfg.LOD.DecimateType, ErrInvalidValue)
	}

	if _, err := rename.ParseMode(cfg.Rename.Mode); err != nil {
		field("rename.mode", cfg.Rename.Mode, ErrInvalidValue)
	}
	if _, err := rename.ParseTarget(cfg.Rename.Target); err != nil {
		field("rename.target", cfg.Rename.Target, ErrInvalidValue)
	}

	if ext := strings.TrimPrefix(cfg.Export.Extension, "."); ext == "" || strings.ContainsAny(ext, `/\`) {
		field("export.extension", cfg.Export.Extension, ErrInvalidValue)
	}
	if err := validatePath(cfg.Export.Path); err != nil {
		field("export.path", cfg.Export.Path, err)
	}

	if cfg.Backup.Retention < 0 {
		field("backup.retention", cfg.Backup.Retention, ErrOutOfRange)
	}
	if err := validatePath(cfg.Backup.Dir); err != nil {
		field("backup.dir", cfg.Backup.Dir, err)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// "//" alone means the project directory
	if path == paths.ProjectPrefix {
		return nil
	}

	cleaned := filepath.Clean(strings.TrimPrefix(path, paths.ProjectPrefix))
	if cleaned == "" {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration key.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, s)
	}
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
