// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/application/usecase/goal"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	tracker *goal.Tracker
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(tracker *goal.Tracker) *GoalController {
	return &GoalController{
		tracker: tracker,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	goals, err := c.tracker.ListGoals(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badGoalRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	target, err := decimal.NewFromString(req.Target)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: "target must be a number",
			Code:  string(domainerror.ErrCodeInvalidGoalTarget),
		})
		return
	}

	input := goal.CreateGoalInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Requirement: req.Requirement,
		Target:      target,
	}

	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := time.Parse(entity.DateLayout, *req.StartDate)
		if err != nil {
			badGoalRequest(ctx, "start_date must use the YYYY-MM-DD format")
			return
		}
		input.StartDate = &startDate
	}

	created, err := c.tracker.CreateGoal(ctx.Request.Context(), input)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(created))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	found, err := c.tracker.GetGoal(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(found))
}

// UpdateProgress handles PUT /goals/:id/progress requests.
func (c *GoalController) UpdateProgress(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badGoalRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	current, err := decimal.NewFromString(req.Current)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: "current must be a number",
			Code:  string(domainerror.ErrCodeInvalidGoalProgress),
		})
		return
	}

	updated, err := c.tracker.UpdateProgress(ctx.Request.Context(), id, current)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(updated))
}

// Reset handles POST /goals/:id/reset requests.
func (c *GoalController) Reset(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	reset, err := c.tracker.ResetGoal(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(reset))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	id, ok := parseGoalID(ctx)
	if !ok {
		return
	}

	if err := c.tracker.DeleteGoal(ctx.Request.Context(), id); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseGoalID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badGoalRequest(ctx, "Invalid goal ID format")
		return uuid.Nil, false
	}
	return id, true
}

func badGoalRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeMissingGoalFields),
	})
}
