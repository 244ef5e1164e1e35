// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/companion/internal/application/usecase/transaction"
	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	sessions      *transaction.FormSessions
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	sessions *transaction.FormSessions,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		sessions:      sessions,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{}
	if kind := strings.TrimSpace(ctx.Query("kind")); kind != "" {
		k := entity.TransactionKind(strings.ToLower(kind))
		input.Kind = &k
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	record, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(record))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.SubmitTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	c.submit(ctx, req, transaction.FormModeCreate, nil)
}

// Update handles PUT /transactions/:id requests. The stored record is
// loaded and replaced in full by the submitted draft.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	existing, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	c.submit(ctx, req, transaction.FormModeEdit, existing)
}

func (c *TransactionController) submit(ctx *gin.Context, req dto.SubmitTransactionRequest, mode transaction.FormMode, existing *entity.Transaction) {
	output, err := c.sessions.Submit(ctx.Request.Context(), req.FormID, transaction.SubmitInput{
		Mode:     mode,
		Draft:    req.ToDraft(),
		Existing: existing,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	status := http.StatusOK
	if mode == transaction.FormModeCreate {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.SubmitTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Record),
		Completed:   output.Completed,
	})
}

// Draft handles GET /transactions/drafts/:form_id requests. It returns the
// input retained after a failed submission so the client can restore it.
func (c *TransactionController) Draft(ctx *gin.Context) {
	controller, ok := c.sessions.Lookup(ctx.Param("form_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No open form with this id"})
		return
	}

	draft, ok := controller.Draft()
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No draft retained for this form"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDraftResponse(draft))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: id,
	}); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseTransactionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return uuid.Nil, false
	}
	return id, true
}
