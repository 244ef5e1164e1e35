// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/companion/internal/application/usecase/transaction"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// SubmitTransactionRequest represents the body of a create or edit submission.
// Field checks happen in the form controller so that every rejection carries
// a field name and code. FormID groups repeated submissions of one form.
type SubmitTransactionRequest struct {
	FormID   string  `json:"form_id,omitempty" binding:"omitempty,max=64"`
	Name     string  `json:"name"`
	Note     string  `json:"note,omitempty"`
	Category string  `json:"category"`
	Kind     string  `json:"kind"`
	Amount   string  `json:"amount"`
	Date     *string `json:"date,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note"`
	Category  string    `json:"category"`
	Kind      string    `json:"kind"`
	Direction string    `json:"direction"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalsResponse represents aggregated ledger totals.
type TotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
}

// SubmitTransactionResponse represents the response of a successful submission.
// Completed tells the client it may close the form.
type SubmitTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Completed   bool                `json:"completed"`
}

// DraftResponse represents the form draft a client should pre-fill.
type DraftResponse struct {
	Name     string `json:"name"`
	Note     string `json:"note"`
	Category string `json:"category"`
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
	Date     string `json:"date,omitempty"`
}

// ToDraft converts the request into a form draft.
func (r SubmitTransactionRequest) ToDraft() transaction.Draft {
	var date string
	if r.Date != nil {
		date = *r.Date
	}
	return transaction.Draft{
		Name:     r.Name,
		Note:     r.Note,
		Category: r.Category,
		Kind:     entity.TransactionKind(r.Kind),
		Amount:   r.Amount,
		Date:     date,
	}
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		Note:      t.Note,
		Category:  t.Category,
		Kind:      string(t.Kind),
		Direction: string(t.Direction),
		Amount:    t.AmountString(),
		Date:      t.DateString(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTotalsResponse converts transaction totals to a TotalsResponse DTO.
func ToTotalsResponse(totals entity.TransactionTotals) TotalsResponse {
	return TotalsResponse{
		IncomeTotal:  totals.IncomeTotal.StringFixed(entity.AmountScale),
		ExpenseTotal: totals.ExpenseTotal.StringFixed(entity.AmountScale),
		NetTotal:     totals.NetTotal.StringFixed(entity.AmountScale),
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: transactions,
		Totals:       ToTotalsResponse(output.Totals),
	}
}

// ToDraftResponse converts a form draft to a DraftResponse DTO.
func ToDraftResponse(draft transaction.Draft) DraftResponse {
	return DraftResponse{
		Name:     draft.Name,
		Note:     draft.Note,
		Category: draft.Category,
		Kind:     string(draft.Kind),
		Amount:   draft.Amount,
		Date:     draft.Date,
	}
}
