// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// GoalSummary is the dashboard view of one goal.
type GoalSummary struct {
	Goal      *entity.Goal
	Remaining decimal.Decimal
}

// GetOverviewOutput represents the whole dashboard snapshot.
type GetOverviewOutput struct {
	Totals           entity.TransactionTotals
	CategoryTotals   []entity.CategoryTotal
	Goals            []GoalSummary
	CompletedGoals   int
	TransactionCount int
}

// GetOverviewUseCase loads transactions and goals together for the dashboard.
type GetOverviewUseCase struct {
	store    adapter.TransactionStore
	goalRepo adapter.GoalRepository
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(store adapter.TransactionStore, goalRepo adapter.GoalRepository) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		store:    store,
		goalRepo: goalRepo,
	}
}

// Execute builds the overview. Both collections are read concurrently and the
// first failure cancels the other read.
func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*GetOverviewOutput, error) {
	var (
		transactions []*entity.Transaction
		goals        []*entity.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = uc.store.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = uc.goalRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]GoalSummary, 0, len(goals))
	completed := 0
	for _, goal := range goals {
		if goal.Completed() {
			completed++
		}
		summaries = append(summaries, GoalSummary{
			Goal:      goal,
			Remaining: goal.Remaining(),
		})
	}

	return &GetOverviewOutput{
		Totals:           entity.SumTotals(transactions),
		CategoryTotals:   AggregateByCategory(transactions),
		Goals:            summaries,
		CompletedGoals:   completed,
		TransactionCount: len(transactions),
	}, nil
}
