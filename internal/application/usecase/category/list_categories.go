// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Kind *entity.TransactionKind // Optional filter by kind
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Name             string
	Kind             entity.TransactionKind
	TransactionCount int
	Total            decimal.Decimal
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories  []*CategoryOutput
	AllowCustom bool
}

// ListCategoriesUseCase handles listing the configured categories with usage statistics.
type ListCategoriesUseCase struct {
	categories entity.CategorySet
	store      adapter.TransactionStore
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categories entity.CategorySet, store adapter.TransactionStore) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categories: categories,
		store:      store,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	kinds := []entity.TransactionKind{entity.TransactionKindIncome, entity.TransactionKindExpense}
	if input.Kind != nil {
		if !input.Kind.IsValid() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidCategoryType,
				"kind must be 'income' or 'expense'",
				domainerror.ErrInvalidCategoryType,
			)
		}
		kinds = []entity.TransactionKind{*input.Kind}
	}

	transactions, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Usage keyed by kind and lowercased category name.
	type usage struct {
		count int
		total decimal.Decimal
	}
	stats := make(map[string]*usage)
	for _, t := range transactions {
		key := string(t.Kind) + "/" + strings.ToLower(t.Category)
		u, ok := stats[key]
		if !ok {
			u = &usage{total: decimal.Zero}
			stats[key] = u
		}
		u.count++
		u.total = u.total.Add(t.Amount)
	}

	output := &ListCategoriesOutput{
		Categories:  make([]*CategoryOutput, 0),
		AllowCustom: uc.categories.AllowCustom,
	}
	for _, kind := range kinds {
		for _, name := range uc.categories.ForKind(kind) {
			item := &CategoryOutput{
				Name:  name,
				Kind:  kind,
				Total: decimal.Zero,
			}
			if u, ok := stats[string(kind)+"/"+strings.ToLower(name)]; ok {
				item.TransactionCount = u.count
				item.Total = u.total
			}
			output.Categories = append(output.Categories, item)
		}
	}

	return output, nil
}
