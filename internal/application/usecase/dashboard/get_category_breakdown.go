// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// GetCategoryBreakdownInput represents the input for getting category breakdown.
// Both bounds are optional and inclusive.
type GetCategoryBreakdownInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	Category         string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	store adapter.TransactionStore
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(store adapter.TransactionStore) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		store: store,
	}
}

// Execute recomputes the breakdown from the current store snapshot.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	transactions, err := uc.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return Breakdown(filterByDate(transactions, input.StartDate, input.EndDate)), nil
}

// Breakdown aggregates a snapshot and attaches percentages and counts.
func Breakdown(transactions []*entity.Transaction) *GetCategoryBreakdownOutput {
	buckets := aggregate(transactions)

	totalExpenses := decimal.Zero
	for _, b := range buckets {
		totalExpenses = totalExpenses.Add(b.total)
	}

	categories := make([]CategoryBreakdownItem, 0, len(buckets))
	for _, b := range buckets {
		var percentage float64
		if !totalExpenses.IsZero() {
			pct := b.total.Mul(decimal.NewFromInt(100)).Div(totalExpenses)
			percentage, _ = pct.Round(2).Float64()
		}

		categories = append(categories, CategoryBreakdownItem{
			Category:         b.category,
			Amount:           b.total,
			Percentage:       percentage,
			TransactionCount: b.count,
		})
	}

	return &GetCategoryBreakdownOutput{
		TotalExpenses: totalExpenses,
		Categories:    categories,
	}
}

// validateRange rejects an end date before the start date.
func validateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// filterByDate keeps records whose date falls within the inclusive bounds.
func filterByDate(transactions []*entity.Transaction, start, end *time.Time) []*entity.Transaction {
	if start == nil && end == nil {
		return transactions
	}

	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if start != nil && t.Date.Before(entity.TruncateToDate(*start)) {
			continue
		}
		if end != nil && t.Date.After(entity.TruncateToDate(*end)) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}
