package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *ValidationError.
	ErrInvalidInput = errors.New("invalid eligibility input")
	// ErrDegenerateInput matches every *ComputationError.
	ErrDegenerateInput = errors.New("degenerate eligibility computation")
)

// ValidationError reports an input that is missing, out of range or of an
// unknown kind. Callers are expected to pre-validate forms; the engine still
// refuses rather than emit NaN or Infinity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ComputationError reports well-formed input whose arithmetic is undefined,
// such as zero total income or a non-positive loan tenure.
type ComputationError struct {
	Step   string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

// Is lets errors.Is(err, ErrDegenerateInput) match any ComputationError.
func (e *ComputationError) Is(target error) bool { return target == ErrDegenerateInput }

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
