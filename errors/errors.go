// Package errors provides error handling for entity-corrector.
//
// It re-exports github.com/cockroachdb/errors (stack traces, wrapping, hints)
// and defines the typed errors returned by the corrector:
//
//	ValidationError    - bad construction arguments (empty corpus, max size <= 0)
//	ConfigurationError - an indexed-only operation on an instance built without an index
//
// Check them with errors.Is against ErrValidation / ErrConfiguration, or
// errors.As against the concrete types.
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// Hints and inspection
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
	Is           = crdb.Is
	As           = crdb.As
	Unwrap       = crdb.Unwrap
)

// Sentinels matched by the typed errors below.
var (
	// ErrValidation marks invalid construction arguments.
	ErrValidation = New("validation error")

	// ErrConfiguration marks an operation the instance was not configured for.
	ErrConfiguration = New("configuration error")
)

// ValidationError reports an invalid construction argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConfigurationError reports an operation that requires a capability
// (typically the metric tree) the instance was not built with.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewValidation returns a stack-annotated ValidationError.
func NewValidation(field, format string, args ...interface{}) error {
	return WithStack(&ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// NewConfiguration returns a stack-annotated ConfigurationError carrying hint.
func NewConfiguration(op, reason, hint string) error {
	err := WithStack(&ConfigurationError{Op: op, Reason: reason})
	if hint != "" {
		err = WithHint(err, hint)
	}
	return err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool { return err != nil && Is(err, ErrValidation) }

// IsConfiguration reports whether err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool { return err != nil && Is(err, ErrConfiguration) }
