// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

func expense(category, amount string) *entity.Transaction {
	return entity.NewTransaction(category, "", category, entity.TransactionKindExpense,
		decimal.RequireFromString(amount), time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
}

func income(category, amount string) *entity.Transaction {
	return entity.NewTransaction(category, "", category, entity.TransactionKindIncome,
		decimal.RequireFromString(amount), time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
}

func TestAggregateByCategory(t *testing.T) {
	t.Run("groups expenses in first-occurrence order", func(t *testing.T) {
		totals := AggregateByCategory([]*entity.Transaction{
			expense("Food", "10"),
			expense("Food", "5"),
			expense("Transportation", "20"),
		})

		if len(totals) != 2 {
			t.Fatalf("expected 2 totals, got %d", len(totals))
		}
		if totals[0].Category != "Food" || !totals[0].Total.Equal(decimal.NewFromInt(15)) {
			t.Errorf("expected Food 15, got %s %s", totals[0].Category, totals[0].Total)
		}
		if totals[1].Category != "Transportation" || !totals[1].Total.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected Transportation 20, got %s %s", totals[1].Category, totals[1].Total)
		}
	})

	t.Run("order follows first occurrence rather than the alphabet", func(t *testing.T) {
		totals := AggregateByCategory([]*entity.Transaction{
			expense("Utilities", "1"),
			expense("Food", "1"),
			expense("Utilities", "1"),
		})

		if totals[0].Category != "Utilities" || totals[1].Category != "Food" {
			t.Errorf("unexpected order: %s, %s", totals[0].Category, totals[1].Category)
		}
	})

	t.Run("income is ignored", func(t *testing.T) {
		totals := AggregateByCategory([]*entity.Transaction{
			income("Salary", "1000"),
			expense("Food", "3.10"),
		})

		if len(totals) != 1 || totals[0].Category != "Food" {
			t.Fatalf("expected only Food, got %+v", totals)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		totals := AggregateByCategory(nil)
		if totals == nil {
			t.Error("expected a non-nil slice")
		}
		if len(totals) != 0 {
			t.Errorf("expected no totals, got %d", len(totals))
		}
	})

	t.Run("decimal sums are exact", func(t *testing.T) {
		records := make([]*entity.Transaction, 0, 10)
		for i := 0; i < 10; i++ {
			records = append(records, expense("Food", "0.10"))
		}

		totals := AggregateByCategory(records)
		if totals[0].Total.StringFixed(2) != "1.00" {
			t.Errorf("expected exactly 1.00, got %s", totals[0].Total.StringFixed(2))
		}
	})
}

func TestAggregateByCategory_OrderIndependentTotals(t *testing.T) {
	records := []*entity.Transaction{
		expense("Food", "10.25"),
		expense("Housing", "900"),
		income("Salary", "2500"),
		expense("Food", "4.75"),
		expense("Health", "60.10"),
		expense("Housing", "15"),
		expense("Shopping", "0.01"),
	}
	want := toMap(AggregateByCategory(records))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]*entity.Transaction(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := toMap(AggregateByCategory(shuffled))
		if len(got) != len(want) {
			t.Fatalf("permutation %d: expected %d categories, got %d", i, len(want), len(got))
		}
		for category, total := range want {
			if !got[category].Equal(total) {
				t.Errorf("permutation %d: %s expected %s, got %s", i, category, total, got[category])
			}
		}
	}
}

func toMap(totals []entity.CategoryTotal) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		m[total.Category] = total.Total
	}
	return m
}

func TestBreakdown(t *testing.T) {
	output := Breakdown([]*entity.Transaction{
		expense("Food", "20"),
		expense("Housing", "75"),
		expense("Food", "5"),
	})

	if !output.TotalExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected total 100, got %s", output.TotalExpenses)
	}
	if output.Categories[0].Percentage != 25 {
		t.Errorf("expected 25%%, got %v", output.Categories[0].Percentage)
	}
	if output.Categories[0].TransactionCount != 2 {
		t.Errorf("expected 2 Food transactions, got %d", output.Categories[0].TransactionCount)
	}
	if output.Categories[1].Percentage != 75 {
		t.Errorf("expected 75%%, got %v", output.Categories[1].Percentage)
	}
}

type stubStore struct {
	records []*entity.Transaction
	err     error
}

func (s *stubStore) List(ctx context.Context) ([]*entity.Transaction, error) {
	return s.records, s.err
}

func (s *stubStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (s *stubStore) Create(ctx context.Context, transaction *entity.Transaction) error { return nil }

func (s *stubStore) Update(ctx context.Context, transaction *entity.Transaction) error { return nil }

func (s *stubStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubGoals struct {
	goals []*entity.Goal
	err   error
}

func (s *stubGoals) Create(ctx context.Context, goal *entity.Goal) error { return nil }

func (s *stubGoals) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}

func (s *stubGoals) List(ctx context.Context) ([]*entity.Goal, error) { return s.goals, s.err }

func (s *stubGoals) Update(ctx context.Context, goal *entity.Goal) error { return nil }

func (s *stubGoals) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestGetCategoryBreakdownUseCase(t *testing.T) {
	store := &stubStore{records: []*entity.Transaction{
		expense("Food", "10"),
		entity.NewTransaction("Old", "", "Food", entity.TransactionKindExpense,
			decimal.NewFromInt(99), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
	}}
	uc := NewGetCategoryBreakdownUseCase(store)

	t.Run("filters by inclusive date range", func(t *testing.T) {
		start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.TotalExpenses.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected total 10, got %s", output.TotalExpenses)
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		start := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{StartDate: &start, EndDate: &end})
		if !errors.Is(err, domainerror.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})
}

func TestGetOverviewUseCase(t *testing.T) {
	done := entity.RestoreGoal(entity.Goal{ID: uuid.New(), Name: "Emergency fund", Target: decimal.NewFromInt(100)}, decimal.NewFromInt(100))
	open := entity.RestoreGoal(entity.Goal{ID: uuid.New(), Name: "No takeout", Target: decimal.NewFromInt(30)}, decimal.NewFromInt(12))

	t.Run("combines both collections", func(t *testing.T) {
		uc := NewGetOverviewUseCase(
			&stubStore{records: []*entity.Transaction{income("Salary", "500"), expense("Food", "120.50")}},
			&stubGoals{goals: []*entity.Goal{done, open}},
		)

		output, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Totals.NetTotal.StringFixed(2) != "379.50" {
			t.Errorf("expected net 379.50, got %s", output.Totals.NetTotal.StringFixed(2))
		}
		if output.CompletedGoals != 1 {
			t.Errorf("expected 1 completed goal, got %d", output.CompletedGoals)
		}
		if !output.Goals[1].Remaining.Equal(decimal.NewFromInt(18)) {
			t.Errorf("expected 18 remaining, got %s", output.Goals[1].Remaining)
		}
		if output.TransactionCount != 2 {
			t.Errorf("expected 2 transactions, got %d", output.TransactionCount)
		}
	})

	t.Run("surfaces a failing read", func(t *testing.T) {
		boom := errors.New("boom")
		uc := NewGetOverviewUseCase(&stubStore{}, &stubGoals{err: boom})

		if _, err := uc.Execute(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped boom, got %v", err)
		}
	})
}
