// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// writeError maps a domain error to its HTTP status and error body.
// Anything unrecognized is logged and reported as an internal error.
func writeError(ctx *gin.Context, err error) {
	var (
		validationErr   *domainerror.ValidationError
		txnErr          *domainerror.TransactionError
		goalErr         *domainerror.GoalError
		dashboardErr    *domainerror.DashboardError
		categoryErr     *domainerror.CategoryError
		conversationErr *domainerror.ConversationError
		persistenceErr  *domainerror.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: validationErr.Message,
			Code:  string(validationErr.Code),
			Field: validationErr.Field,
		})
	case errors.As(err, &txnErr):
		ctx.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
	case errors.As(err, &goalErr):
		ctx.JSON(statusForGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
	case errors.As(err, &dashboardErr):
		status := http.StatusBadRequest
		if dashboardErr.Code == domainerror.ErrCodeDashboardInternalError {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: dashboardErr.Message,
			Code:  string(dashboardErr.Code),
		})
	case errors.As(err, &categoryErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
	case errors.As(err, &conversationErr):
		status := http.StatusInternalServerError
		if conversationErr.Code == domainerror.ErrCodeChatMirrorUnavailable {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: conversationErr.Message,
			Code:  string(conversationErr.Code),
		})
	case errors.As(err, &persistenceErr):
		slog.Error("Store operation failed", "op", persistenceErr.Op, "error", persistenceErr.Err)
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "The ledger is temporarily unavailable, please retry",
			Code:    string(domainerror.ErrCodeTransactionPersisting),
			Details: persistenceErr.Op,
		})
	default:
		slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// statusForTransactionError maps transaction error codes to HTTP status codes.
func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSubmissionInFlight:
		return http.StatusConflict
	case domainerror.ErrCodeTransactionPersisting:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// statusForGoalError maps goal error codes to HTTP status codes.
func statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeGoalAlreadyCompleted:
		return http.StatusConflict
	case domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
