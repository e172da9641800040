package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by identifier finds no row.
	ErrNotFound = errors.New("record not found")

	// ErrRestricted is returned when a delete is attempted on a row that
	// still has dependents under a restrict policy. The target row is left
	// untouched.
	ErrRestricted = errors.New("record is referenced and cannot be deleted")

	// ErrValidation is the class of all validation failures; match with
	// errors.Is. Concrete failures carry field and reason.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a single rejected field. The whole operation is
// rejected, nothing is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
