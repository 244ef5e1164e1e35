// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Kind *entity.TransactionKind // Optional filter
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Totals       entity.TransactionTotals
}

// ListTransactionsUseCase handles listing the ledger snapshot.
type ListTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.TransactionStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		store: store,
	}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Kind != nil && !input.Kind.IsValid() {
		return nil, domainerror.NewValidationError(
			FieldKind,
			domainerror.ErrCodeInvalidTransactionKind,
			"kind must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionKind,
		)
	}

	transactions, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if input.Kind != nil && t.Kind != *input.Kind {
			continue
		}
		filtered = append(filtered, t)
	}

	return &ListTransactionsOutput{
		Transactions: filtered,
		Totals:       entity.SumTotals(filtered),
	}, nil
}
