// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=1000"`
	Image       string  `json:"image,omitempty" binding:"omitempty,max=500"`
	Requirement string  `json:"requirement,omitempty" binding:"omitempty,max=1000"`
	Target      string  `json:"target" binding:"required"`
	StartDate   *string `json:"start_date,omitempty"`
}

// UpdateProgressRequest represents the request body for a progress update.
type UpdateProgressRequest struct {
	Current string `json:"current" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Requirement string    `json:"requirement"`
	Target      string    `json:"target"`
	Current     string    `json:"current"`
	Remaining   string    `json:"remaining"`
	Completed   bool      `json:"completed"`
	Status      string    `json:"status"`
	StartDate   *string   `json:"start_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	response := GoalResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		Image:       g.Image,
		Requirement: g.Requirement,
		Target:      g.Target.StringFixed(entity.AmountScale),
		Current:     g.Current().StringFixed(entity.AmountScale),
		Remaining:   g.Remaining().StringFixed(entity.AmountScale),
		Completed:   g.Completed(),
		Status:      string(g.Status()),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	if g.StartDate != nil {
		dateStr := g.StartDate.Format(entity.DateLayout)
		response.StartDate = &dateStr
	}

	return response
}

// ToGoalListResponse converts a slice of domain Goals to a GoalListResponse DTO.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: responses}
}
