// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/category"
	"github.com/finance-tracker/companion/internal/domain/entity"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listUseCase: listUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{}
	if kind := strings.TrimSpace(ctx.Query("kind")); kind != "" {
		k := entity.TransactionKind(strings.ToLower(kind))
		input.Kind = &k
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}
