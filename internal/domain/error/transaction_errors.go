// Package error defines domain-specific errors for the finance companion.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction id matches no record.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidName is returned when the transaction name is blank.
	ErrInvalidName = errors.New("invalid transaction name")

	// ErrNameTooLong is returned when the transaction name exceeds the maximum length.
	ErrNameTooLong = errors.New("name too long")

	// ErrNoteTooLong is returned when the transaction note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")

	// ErrInvalidTransactionKind is returned when the kind is neither income nor expense.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrInvalidTransactionAmount is returned when the amount is not a positive two-decimal number.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidCategory is returned when the category is blank.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrUnknownCategory is returned when the category is not offered for the kind.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidTransactionDate is returned when the date is not a YYYY-MM-DD calendar date.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrMissingExistingRecord is returned when an edit is submitted without the record being edited.
	ErrMissingExistingRecord = errors.New("missing existing record")

	// ErrSubmissionInFlight is returned when a form is submitted while a previous submission is pending.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidName              TransactionErrorCode = "TXN-010001"
	ErrCodeNameTooLong              TransactionErrorCode = "TXN-010002"
	ErrCodeNoteTooLong              TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidTransactionKind   TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidCategory          TransactionErrorCode = "TXN-010006"
	ErrCodeUnknownCategory          TransactionErrorCode = "TXN-010007"
	ErrCodeMissingExistingRecord    TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010009"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010010"

	// Lookup and form errors (02XXXX)
	ErrCodeTransactionNotFound   TransactionErrorCode = "TXN-020001"
	ErrCodeSubmissionInFlight    TransactionErrorCode = "TXN-020002"
	ErrCodeTransactionPersisting TransactionErrorCode = "TXN-020003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
