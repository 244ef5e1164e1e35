// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// TransactionStore defines the interface for transaction persistence operations.
// The store owns the persisted collection; callers only hold transient copies.
type TransactionStore interface {
	// List returns a snapshot of every stored transaction, oldest first.
	List(ctx context.Context) ([]*entity.Transaction, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// Create stores a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update replaces the stored transaction with the same ID.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
