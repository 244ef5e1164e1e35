// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus represents where a goal is in its lifecycle.
type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
)

// Goal represents a savings or behaviour streak tracked toward a target.
//
// Current progress and the completed flag are unexported: completed is always
// current >= target, and both only change through ApplyProgress and Reset.
type Goal struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	Requirement string
	Target      decimal.Decimal
	StartDate   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	current   decimal.Decimal
	completed bool
}

// NewGoal creates a new Goal entity with zero progress.
func NewGoal(name, description, image, requirement string, target decimal.Decimal, startDate *time.Time) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Image:       image,
		Requirement: requirement,
		Target:      target,
		StartDate:   startDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		current:     decimal.Zero,
		completed:   false,
	}
}

// RestoreGoal rebuilds a goal loaded from storage. The completed flag is
// recomputed from current and target rather than trusted.
func RestoreGoal(g Goal, current decimal.Decimal) *Goal {
	g.current = current
	g.completed = current.GreaterThanOrEqual(g.Target)
	return &g
}

// Current returns the progress recorded so far.
func (g *Goal) Current() decimal.Decimal {
	return g.current
}

// Completed reports whether current has reached target.
func (g *Goal) Completed() bool {
	return g.completed
}

// Status returns the lifecycle state derived from Completed.
func (g *Goal) Status() GoalStatus {
	if g.completed {
		return GoalStatusCompleted
	}
	return GoalStatusInProgress
}

// Remaining returns how much progress is still needed, never below zero.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.Target.Sub(g.current)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyProgress replaces current and recomputes completed. It reports whether
// the value was applied: negative values are refused, and so is any value
// below target once the goal is completed.
func (g *Goal) ApplyProgress(current decimal.Decimal) bool {
	if current.IsNegative() {
		return false
	}
	if g.completed && current.LessThan(g.Target) {
		return false
	}

	g.current = current
	g.completed = current.GreaterThanOrEqual(g.Target)
	g.UpdatedAt = time.Now().UTC()
	return true
}

// Reset moves the goal back to zero progress. Target, name and requirement
// are left as they are.
func (g *Goal) Reset() {
	g.current = decimal.Zero
	g.completed = false
	g.UpdatedAt = time.Now().UTC()
}
