// Package error defines domain-specific errors for the finance companion.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidGoalTarget is returned when the target is zero or negative.
	ErrInvalidGoalTarget = errors.New("invalid goal target")

	// ErrInvalidGoalProgress is returned when the progress value is negative.
	ErrInvalidGoalProgress = errors.New("invalid goal progress")

	// ErrMissingGoalName is returned when a goal is created without a name.
	ErrMissingGoalName = errors.New("missing goal name")

	// ErrGoalAlreadyCompleted is returned when a progress update would move a
	// completed goal back below its target. Only a reset may do that.
	ErrGoalAlreadyCompleted = errors.New("goal already completed")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound         GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalTarget    GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalProgress  GoalErrorCode = "GOL-010003"
	ErrCodeMissingGoalName      GoalErrorCode = "GOL-010004"
	ErrCodeGoalAlreadyCompleted GoalErrorCode = "GOL-010005"
	ErrCodeMissingGoalFields    GoalErrorCode = "GOL-010006"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
