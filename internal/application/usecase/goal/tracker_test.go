// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// memoryGoals stores copies so callers never share state with the repository.
type memoryGoals struct {
	mu    sync.Mutex
	goals map[uuid.UUID]entity.Goal
	order []uuid.UUID

	failUpdate error
}

func newMemoryGoals() *memoryGoals {
	return &memoryGoals{goals: make(map[uuid.UUID]entity.Goal)}
}

func (r *memoryGoals) Create(ctx context.Context, goal *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[goal.ID] = *goal
	r.order = append(r.order, goal.ID)
	return nil
}

func (r *memoryGoals) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return &goal, nil
}

func (r *memoryGoals) List(ctx context.Context) ([]*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	goals := make([]*entity.Goal, 0, len(r.order))
	for _, id := range r.order {
		if goal, ok := r.goals[id]; ok {
			goals = append(goals, &goal)
		}
	}
	return goals, nil
}

func (r *memoryGoals) Update(ctx context.Context, goal *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	r.goals[goal.ID] = *goal
	return nil
}

func (r *memoryGoals) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.goals, id)
	return nil
}

func goalCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) {
		t.Fatalf("expected GoalError, got %T: %v", err, err)
	}
	return goalErr.Code
}

func newSavingsGoal(t *testing.T, tracker *Tracker) *entity.Goal {
	t.Helper()
	goal, err := tracker.CreateGoal(context.Background(), CreateGoalInput{
		Name:        "Emergency fund",
		Description: "Three months of expenses",
		Requirement: "Save into the emergency account",
		Target:      decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return goal
}

func TestTracker_CreateGoal(t *testing.T) {
	tracker := NewTracker(newMemoryGoals())

	t.Run("starts in progress at zero", func(t *testing.T) {
		goal := newSavingsGoal(t, tracker)

		if goal.ID == uuid.Nil {
			t.Error("expected a generated id")
		}
		if !goal.Current().IsZero() {
			t.Errorf("expected current 0, got %s", goal.Current())
		}
		if goal.Completed() {
			t.Error("expected a new goal not to be completed")
		}
		if goal.Requirement != "Save into the emergency account" {
			t.Errorf("expected requirement copied verbatim, got %q", goal.Requirement)
		}
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		_, err := tracker.CreateGoal(context.Background(), CreateGoalInput{Target: decimal.NewFromInt(1)})
		if code := goalCode(t, err); code != domainerror.ErrCodeMissingGoalName {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeMissingGoalName, code)
		}
	})

	t.Run("rejects a non-positive target", func(t *testing.T) {
		_, err := tracker.CreateGoal(context.Background(), CreateGoalInput{Name: "x", Target: decimal.Zero})
		if code := goalCode(t, err); code != domainerror.ErrCodeInvalidGoalTarget {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidGoalTarget, code)
		}
	})
}

func TestTracker_CompleteThenReset(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(newMemoryGoals())
	goal := newSavingsGoal(t, tracker)

	updated, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Completed() || updated.Status() != entity.GoalStatusCompleted {
		t.Fatal("expected goal to be completed at target")
	}

	reset, err := tracker.ResetGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reset.Current().IsZero() || reset.Completed() {
		t.Errorf("expected {current: 0, completed: false}, got {%s, %v}", reset.Current(), reset.Completed())
	}
	if !reset.Target.Equal(decimal.NewFromInt(1000)) || reset.Name != "Emergency fund" {
		t.Error("expected reset to keep target and name")
	}
}

func TestTracker_UpdateProgress(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryGoals()
	tracker := NewTracker(repo)

	t.Run("unknown goal is not found", func(t *testing.T) {
		_, err := tracker.UpdateProgress(ctx, uuid.New(), decimal.NewFromInt(1))
		if code := goalCode(t, err); code != domainerror.ErrCodeGoalNotFound {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeGoalNotFound, code)
		}
	})

	t.Run("negative progress is rejected", func(t *testing.T) {
		goal := newSavingsGoal(t, tracker)
		_, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(-1))
		if !errors.Is(err, domainerror.ErrInvalidGoalProgress) {
			t.Fatalf("expected ErrInvalidGoalProgress, got %v", err)
		}
	})

	t.Run("updates are idempotent", func(t *testing.T) {
		goal := newSavingsGoal(t, tracker)

		first, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(250))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(250))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !first.Current().Equal(second.Current()) || first.Completed() != second.Completed() {
			t.Error("expected repeated update to yield the same state")
		}
	})

	t.Run("completed goal does not revert through progress", func(t *testing.T) {
		goal := newSavingsGoal(t, tracker)
		if _, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(1200)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(10))
		if code := goalCode(t, err); code != domainerror.ErrCodeGoalAlreadyCompleted {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeGoalAlreadyCompleted, code)
		}

		stored, _ := tracker.GetGoal(ctx, goal.ID)
		if !stored.Completed() || !stored.Current().Equal(decimal.NewFromInt(1200)) {
			t.Error("expected the rejected update to leave the goal unchanged")
		}

		// Raising progress further is still allowed.
		if _, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(1500)); err != nil {
			t.Errorf("unexpected error raising progress: %v", err)
		}
	})

	t.Run("failed store update surfaces the error", func(t *testing.T) {
		goal := newSavingsGoal(t, tracker)
		repo.failUpdate = errors.New("disk full")
		defer func() { repo.failUpdate = nil }()

		if _, err := tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(5)); !errors.Is(err, repo.failUpdate) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})
}

func TestTracker_CompletedMatchesCurrentAfterAnySequence(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(newMemoryGoals())
	goal := newSavingsGoal(t, tracker)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		var (
			updated *entity.Goal
			err     error
		)
		if rng.Intn(10) == 0 {
			updated, err = tracker.ResetGoal(ctx, goal.ID)
		} else {
			updated, err = tracker.UpdateProgress(ctx, goal.ID, decimal.NewFromInt(int64(rng.Intn(1500))))
		}
		if err != nil && !errors.Is(err, domainerror.ErrGoalAlreadyCompleted) {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}

		stored, err := tracker.GetGoal(ctx, goal.ID)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if stored.Completed() != stored.Current().GreaterThanOrEqual(stored.Target) {
			t.Fatalf("step %d: completed=%v but current=%s target=%s", i, stored.Completed(), stored.Current(), stored.Target)
		}
		if updated != nil && updated.Completed() != updated.Current().GreaterThanOrEqual(updated.Target) {
			t.Fatalf("step %d: returned goal is inconsistent", i)
		}
	}
}

func TestTracker_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(newMemoryGoals())
	first := newSavingsGoal(t, tracker)
	newSavingsGoal(t, tracker)

	goals, err := tracker.ListGoals(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}

	if err := tracker.DeleteGoal(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tracker.DeleteGoal(ctx, first.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound on second delete, got %v", err)
	}
}
