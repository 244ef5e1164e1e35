// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// ChatRepository mirrors the append-only assistant conversation log.
type ChatRepository interface {
	// Append adds a message to the end of the log.
	Append(ctx context.Context, message entity.ChatMessage) error

	// List returns the whole log in insertion order.
	List(ctx context.Context) ([]entity.ChatMessage, error)

	// Clear drops every stored message.
	Clear(ctx context.Context) error
}
