// Package errors provides the shared error vocabulary for the inventory
// service: a not-found sentinel and a structured validation error that
// handlers translate into HTTP responses.
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected request. A rejected operation is never
// partially applied: callers return before mutating any state.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation extracts the ValidationError wrapped in err, if any.
func AsValidation(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
