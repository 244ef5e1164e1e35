// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// SendMessageRequest represents the request body for a user chat message.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// ChatMessageResponse represents a single chat turn.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationResponse represents the whole conversation log.
type ConversationResponse struct {
	Messages       []ChatMessageResponse `json:"messages"`
	PendingReplies int                   `json:"pending_replies"`
}

// OpenConversationResponse represents the response to opening the assistant.
type OpenConversationResponse struct {
	Welcomed bool                  `json:"welcomed"`
	Messages []ChatMessageResponse `json:"messages"`
}

// SendMessageResponse represents the response to a user message. Message is
// nil when the text was blank and nothing was appended.
type SendMessageResponse struct {
	Message *ChatMessageResponse `json:"message"`
}

// ToChatMessageResponse converts a domain ChatMessage to a ChatMessageResponse DTO.
func ToChatMessageResponse(m entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID.String(),
		Text:      m.Text,
		Sender:    string(m.Sender),
		Timestamp: m.Timestamp,
	}
}

// ToChatMessageResponses converts a conversation log to response DTOs.
func ToChatMessageResponses(messages []entity.ChatMessage) []ChatMessageResponse {
	responses := make([]ChatMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToChatMessageResponse(m)
	}
	return responses
}
