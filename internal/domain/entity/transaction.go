// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents whether a transaction is income or an expense.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// TransactionDirection represents the ledger side of a transaction.
type TransactionDirection string

const (
	TransactionDirectionCredit TransactionDirection = "credit"
	TransactionDirectionDebit  TransactionDirection = "debit"
)

// AmountScale is the number of fractional digits amounts are kept at.
const AmountScale = 2

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// IsValid reports whether the kind is one of the two supported values.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindIncome || k == TransactionKindExpense
}

// DirectionForKind returns the direction implied by a kind:
// income is a credit and an expense is a debit.
func DirectionForKind(kind TransactionKind) TransactionDirection {
	if kind == TransactionKindIncome {
		return TransactionDirectionCredit
	}
	return TransactionDirectionDebit
}

// Transaction represents a single income or expense entry in the ledger.
// Amount is always positive; Kind carries the sign.
type Transaction struct {
	ID        uuid.UUID
	Name      string
	Note      string
	Category  string
	Kind      TransactionKind
	Direction TransactionDirection
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a new Transaction entity with a fresh id.
// Direction is derived from kind.
func NewTransaction(
	name string,
	note string,
	category string,
	kind TransactionKind,
	amount decimal.Decimal,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:        uuid.New(),
		Name:      name,
		Note:      note,
		Category:  category,
		Kind:      kind,
		Direction: DirectionForKind(kind),
		Amount:    amount,
		Date:      TruncateToDate(date),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Kind == TransactionKindExpense
}

// AmountString renders the amount with exactly two fractional digits.
func (t *Transaction) AmountString() string {
	return t.Amount.StringFixed(AmountScale)
}

// DateString renders the transaction date as YYYY-MM-DD.
func (t *Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TransactionTotals represents aggregated totals for a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// SumTotals computes income, expense and net totals with exact decimal addition.
func SumTotals(transactions []*Transaction) TransactionTotals {
	totals := TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}
	for _, t := range transactions {
		if t.IsExpense() {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Amount)
		} else {
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals
}
