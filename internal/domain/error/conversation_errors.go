// Package error defines domain-specific errors for the finance companion.
package error

import "errors"

// Conversation domain errors.
var (
	// ErrEmptyReply is returned by a responder that produced no text.
	ErrEmptyReply = errors.New("responder returned an empty reply")

	// ErrResponderPanicked is recorded when a responder panics while generating a reply.
	ErrResponderPanicked = errors.New("responder panicked")

	// ErrChatMirrorUnavailable is returned when the chat log mirror rejects an append.
	ErrChatMirrorUnavailable = errors.New("chat log mirror unavailable")
)

// ConversationErrorCode defines error codes for conversation errors.
// Format: CHT-XXYYYY where XX is category and YYYY is specific error.
type ConversationErrorCode string

const (
	ErrCodeEmptyReply            ConversationErrorCode = "CHT-010001"
	ErrCodeResponderPanicked     ConversationErrorCode = "CHT-010002"
	ErrCodeChatMirrorUnavailable ConversationErrorCode = "CHT-010003"
	ErrCodeMissingMessageFields  ConversationErrorCode = "CHT-010004"
	ErrCodeAssistantRateLimited  ConversationErrorCode = "CHT-010005"
)

// ConversationError represents a conversation error with code and message.
type ConversationError struct {
	Code    ConversationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ConversationError) Unwrap() error {
	return e.Err
}

// NewConversationError creates a new ConversationError with the given code and message.
func NewConversationError(code ConversationErrorCode, message string, err error) *ConversationError {
	return &ConversationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
