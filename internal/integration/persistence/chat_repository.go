// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// chatRecord is the JSON shape of a chat message in the Redis list.
type chatRecord struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// chatRepository implements adapter.ChatRepository on a Redis list.
// RPUSH keeps insertion order, which is the conversation order.
type chatRepository struct {
	client *redis.Client
	key    string
}

// NewChatRepository creates a new Redis-backed chat repository instance.
func NewChatRepository(client *redis.Client, key string) adapter.ChatRepository {
	return &chatRepository{
		client: client,
		key:    key,
	}
}

// Append adds a message to the end of the list.
func (r *chatRepository) Append(ctx context.Context, message entity.ChatMessage) error {
	payload, err := json.Marshal(chatRecord{
		ID:        message.ID,
		Text:      message.Text,
		Sender:    string(message.Sender),
		Timestamp: message.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to encode chat message: %w", err)
	}

	return r.client.RPush(ctx, r.key, payload).Err()
}

// List returns the whole list in insertion order.
func (r *chatRepository) List(ctx context.Context) ([]entity.ChatMessage, error) {
	values, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]entity.ChatMessage, 0, len(values))
	for _, value := range values {
		var record chatRecord
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		messages = append(messages, entity.ChatMessage{
			ID:        record.ID,
			Text:      record.Text,
			Sender:    entity.ChatSender(record.Sender),
			Timestamp: record.Timestamp,
		})
	}
	return messages, nil
}

// Clear deletes the list.
func (r *chatRepository) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
