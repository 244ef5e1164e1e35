// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/dashboard"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase  *dashboard.GetOverviewUseCase
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	breakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase:  overviewUseCase,
		breakdownUseCase: breakdownUseCase,
	}
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	output, err := c.overviewUseCase.Execute(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// CategoryBreakdown handles GET /dashboard/categories requests.
// start_date and end_date are optional inclusive YYYY-MM-DD bounds.
func (c *DashboardController) CategoryBreakdown(ctx *gin.Context) {
	input := dashboard.GetCategoryBreakdownInput{}

	var ok bool
	if input.StartDate, ok = parseQueryDate(ctx, "start_date"); !ok {
		return
	}
	if input.EndDate, ok = parseQueryDate(ctx, "end_date"); !ok {
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

func parseQueryDate(ctx *gin.Context, key string) (*time.Time, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, true
	}

	date, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   domainerror.ErrInvalidDateFormat.Error(),
			Code:    string(domainerror.ErrCodeInvalidDateFormat),
			Details: key,
		})
		return nil, false
	}
	return &date, true
}
