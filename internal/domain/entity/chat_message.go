// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSender identifies who authored a chat turn.
type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatMessage is one turn in the assistant conversation. Messages are never
// changed once appended to a log.
type ChatMessage struct {
	ID        uuid.UUID
	Text      string
	Sender    ChatSender
	Timestamp time.Time
}

// NewChatMessage creates a new ChatMessage stamped with the given instant.
func NewChatMessage(text string, sender ChatSender, timestamp time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		Timestamp: timestamp,
	}
}

// IsFromUser reports whether the message was written by the user.
func (m ChatMessage) IsFromUser() bool {
	return m.Sender == ChatSenderUser
}
