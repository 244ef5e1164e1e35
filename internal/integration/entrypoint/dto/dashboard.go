// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/companion/internal/application/usecase/dashboard"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// ChartPalette is the color cycle assigned to category slices in order.
var ChartPalette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

// ChartSliceResponse is one slice of the spending chart. Value is the numeric
// form of Amount for chart libraries.
type ChartSliceResponse struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Amount string  `json:"amount"`
	Color  string  `json:"color"`
}

// GoalSummaryResponse is the dashboard view of one goal.
type GoalSummaryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Target    string `json:"target"`
	Current   string `json:"current"`
	Remaining string `json:"remaining"`
	Completed bool   `json:"completed"`
}

// OverviewResponse represents the dashboard overview.
type OverviewResponse struct {
	Totals           TotalsResponse        `json:"totals"`
	Chart            []ChartSliceResponse  `json:"chart"`
	Goals            []GoalSummaryResponse `json:"goals"`
	CompletedGoals   int                   `json:"completed_goals"`
	TransactionCount int                   `json:"transaction_count"`
}

// CategoryBreakdownItemResponse represents one category in the breakdown.
type CategoryBreakdownItemResponse struct {
	Category         string  `json:"category"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
	Color            string  `json:"color"`
}

// CategoryBreakdownResponse represents the response for the category breakdown.
type CategoryBreakdownResponse struct {
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// ColorAt returns the palette color for the i-th slice.
func ColorAt(i int) string {
	return ChartPalette[i%len(ChartPalette)]
}

// ToChartSlices converts category totals to chart slices, keeping their order.
func ToChartSlices(totals []entity.CategoryTotal) []ChartSliceResponse {
	slices := make([]ChartSliceResponse, len(totals))
	for i, total := range totals {
		value, _ := total.Total.Float64()
		slices[i] = ChartSliceResponse{
			Name:   total.Category,
			Value:  value,
			Amount: total.Total.StringFixed(entity.AmountScale),
			Color:  ColorAt(i),
		}
	}
	return slices
}

// ToOverviewResponse converts a GetOverviewOutput to an OverviewResponse DTO.
func ToOverviewResponse(output *dashboard.GetOverviewOutput) OverviewResponse {
	goals := make([]GoalSummaryResponse, len(output.Goals))
	for i, summary := range output.Goals {
		goals[i] = GoalSummaryResponse{
			ID:        summary.Goal.ID.String(),
			Name:      summary.Goal.Name,
			Target:    summary.Goal.Target.StringFixed(entity.AmountScale),
			Current:   summary.Goal.Current().StringFixed(entity.AmountScale),
			Remaining: summary.Remaining.StringFixed(entity.AmountScale),
			Completed: summary.Goal.Completed(),
		}
	}

	return OverviewResponse{
		Totals:           ToTotalsResponse(output.Totals),
		Chart:            ToChartSlices(output.CategoryTotals),
		Goals:            goals,
		CompletedGoals:   output.CompletedGoals,
		TransactionCount: output.TransactionCount,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to a CategoryBreakdownResponse DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, item := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			Category:         item.Category,
			Amount:           item.Amount.StringFixed(entity.AmountScale),
			Percentage:       item.Percentage,
			TransactionCount: item.TransactionCount,
			Color:            ColorAt(i),
		}
	}

	return CategoryBreakdownResponse{
		TotalExpenses: output.TotalExpenses.StringFixed(entity.AmountScale),
		Categories:    categories,
	}
}
