package service

import "errors"

// ValidationError marks a request the caller can fix and resubmit. The
// HTTP layer maps it to a 400 without touching the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a validation error with a caller-facing
// message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
