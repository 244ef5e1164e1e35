// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/companion/internal/application/usecase/category"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	TransactionCount int    `json:"transaction_count"`
	Total            string `json:"total"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories  []CategoryResponse `json:"categories"`
	AllowCustom bool               `json:"allow_custom"`
}

// ToCategoryListResponse converts a ListCategoriesOutput to a CategoryListResponse DTO.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			Name:             c.Name,
			Kind:             string(c.Kind),
			TransactionCount: c.TransactionCount,
			Total:            c.Total.StringFixed(entity.AmountScale),
		}
	}
	return CategoryListResponse{
		Categories:  categories,
		AllowCustom: output.AllowCustom,
	}
}
