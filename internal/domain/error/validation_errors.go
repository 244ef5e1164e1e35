// Package error defines domain-specific errors for the finance companion.
package error

import "errors"

// ValidationError is a field-level input error. The input surface stays open
// and the draft is kept so the user can correct it.
type ValidationError struct {
	Field   string
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := e.Field + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field string, code TransactionErrorCode, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
