package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Validationf wraps ErrValidation with a formatted, user-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ConflictError represents a sibling-title or unique-column collision with
// details about the colliding field.
type ConflictError struct {
	Message string // Human-readable error message
	Field   string // Name of the colliding field (title, email)
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Message extracts the user-facing portion of a wrapped domain error.
// Sentinel-wrapped errors read "validation failed: Title is required";
// only the part after the sentinel is meant for the response body.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, sentinel) {
			msg := err.Error()
			prefix := sentinel.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
