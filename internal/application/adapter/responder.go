// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// Responder produces the assistant's reply to a user message.
type Responder interface {
	// Reply returns the bot text for trigger given the log as it stands when
	// the reply fires. History includes trigger.
	Reply(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error)
}
