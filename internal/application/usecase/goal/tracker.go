// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	Name        string
	Description string
	Image       string // Optional
	Requirement string
	Target      decimal.Decimal
	StartDate   *time.Time // Optional
}

// Tracker owns the goal set. Every state change goes through it, so
// completed always matches current >= target.
type Tracker struct {
	goalRepo adapter.GoalRepository

	// mu serializes read-modify-write cycles on goals.
	mu sync.Mutex
}

// NewTracker creates a new Tracker instance.
func NewTracker(goalRepo adapter.GoalRepository) *Tracker {
	return &Tracker{
		goalRepo: goalRepo,
	}
}

// CreateGoal creates a goal with zero progress.
func (t *Tracker) CreateGoal(ctx context.Context, input CreateGoalInput) (*entity.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalName,
			"name is required",
			domainerror.ErrMissingGoalName,
		)
	}

	if !input.Target.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTarget,
			"target must be greater than zero",
			domainerror.ErrInvalidGoalTarget,
		)
	}

	goal := entity.NewGoal(
		name,
		input.Description,
		input.Image,
		input.Requirement,
		input.Target,
		input.StartDate,
	)

	if err := t.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("Goal created", "goal_id", goal.ID, "target", goal.Target.String())
	return goal, nil
}

// UpdateProgress replaces the goal's current value. Applying the same value
// twice leaves the same state. A completed goal refuses values below target;
// only ResetGoal moves it back to in progress.
func (t *Tracker) UpdateProgress(ctx context.Context, goalID uuid.UUID, newCurrent decimal.Decimal) (*entity.Goal, error) {
	if newCurrent.IsNegative() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalProgress,
			"progress must not be negative",
			domainerror.ErrInvalidGoalProgress,
		)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	goal, err := t.find(ctx, goalID)
	if err != nil {
		return nil, err
	}

	wasCompleted := goal.Completed()
	if !goal.ApplyProgress(newCurrent) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalAlreadyCompleted,
			"goal is completed; reset it before lowering progress",
			domainerror.ErrGoalAlreadyCompleted,
		)
	}

	if err := t.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if !wasCompleted && goal.Completed() {
		slog.Info("Goal completed", "goal_id", goal.ID, "current", goal.Current().String())
	}
	return goal, nil
}

// ResetGoal sets the goal back to zero progress. Target, name and
// requirement are left untouched.
func (t *Tracker) ResetGoal(ctx context.Context, goalID uuid.UUID) (*entity.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	goal, err := t.find(ctx, goalID)
	if err != nil {
		return nil, err
	}

	goal.Reset()

	if err := t.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to reset goal: %w", err)
	}

	slog.Info("Goal reset", "goal_id", goal.ID)
	return goal, nil
}

// GetGoal returns a single goal.
func (t *Tracker) GetGoal(ctx context.Context, goalID uuid.UUID) (*entity.Goal, error) {
	return t.find(ctx, goalID)
}

// ListGoals returns every tracked goal.
func (t *Tracker) ListGoals(ctx context.Context) ([]*entity.Goal, error) {
	goals, err := t.goalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// DeleteGoal removes a goal.
func (t *Tracker) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.find(ctx, goalID); err != nil {
		return err
	}

	if err := t.goalRepo.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (t *Tracker) find(ctx context.Context, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := t.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}
