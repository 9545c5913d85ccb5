package services

import (
	"errors"
	"fmt"
)

// Error taxonomy. Everything here is recovered at the handler boundary and
// surfaced as a user-readable message; nothing is process-fatal.
var (
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateInviteCode = errors.New("invite code is already in use")
)

// ValidationError reports an empty or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
