// Package transaction contains transaction-related use cases.
package transaction

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
	domainerror "github.com/finance-tracker/companion/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for transaction names.
	MaxNameLength = 255
	// MaxNoteLength is the maximum allowed length for transaction notes.
	MaxNoteLength = 1000
)

// Field names reported by ValidationError.
const (
	FieldName     = "name"
	FieldNote     = "note"
	FieldKind     = "kind"
	FieldCategory = "category"
	FieldAmount   = "amount"
	FieldDate     = "date"
	FieldExisting = "existing"
)

// amountPattern accepts plain unsigned decimal strings such as "12" or "12.50".
// Signs, exponents and thousands separators are rejected before parsing.
var amountPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// maxAmount is the exclusive upper bound that still fits decimal(15,2).
var maxAmount = decimal.New(1, 13)

// Draft is the raw, unvalidated input of the transaction form.
type Draft struct {
	Name     string
	Note     string
	Category string
	Kind     entity.TransactionKind
	Amount   string
	Date     string // YYYY-MM-DD; empty means no explicit date
}

// ValidatedDraft is a Draft that passed every field check, with the amount parsed.
type ValidatedDraft struct {
	Name     string
	Note     string
	Category string
	Kind     entity.TransactionKind
	Amount   decimal.Decimal
	Date     *time.Time
}

// ValidateDraft checks a draft against the field rules and the configured
// category set. It has no side effects.
func ValidateDraft(draft Draft, categories entity.CategorySet) (*ValidatedDraft, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, domainerror.NewValidationError(
			FieldName,
			domainerror.ErrCodeInvalidName,
			"name is required",
			domainerror.ErrInvalidName,
		)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, domainerror.NewValidationError(
			FieldName,
			domainerror.ErrCodeNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrNameTooLong,
		)
	}

	note := strings.TrimSpace(draft.Note)
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return nil, domainerror.NewValidationError(
			FieldNote,
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}

	kind := entity.TransactionKind(strings.ToLower(strings.TrimSpace(string(draft.Kind))))
	if !kind.IsValid() {
		return nil, domainerror.NewValidationError(
			FieldKind,
			domainerror.ErrCodeInvalidTransactionKind,
			"kind must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionKind,
		)
	}

	category := strings.TrimSpace(draft.Category)
	if category == "" {
		return nil, domainerror.NewValidationError(
			FieldCategory,
			domainerror.ErrCodeInvalidCategory,
			"category is required",
			domainerror.ErrInvalidCategory,
		)
	}
	if !categories.Allows(kind, category) {
		return nil, domainerror.NewValidationError(
			FieldCategory,
			domainerror.ErrCodeUnknownCategory,
			fmt.Sprintf("category %q is not available for %s", category, kind),
			domainerror.ErrUnknownCategory,
		)
	}

	amount, err := ParseAmount(draft.Amount)
	if err != nil {
		return nil, err
	}

	date, err := ParseDate(draft.Date)
	if err != nil {
		return nil, err
	}

	return &ValidatedDraft{
		Name:     name,
		Note:     note,
		Category: categories.Canonical(kind, category),
		Kind:     kind,
		Amount:   amount,
		Date:     date,
	}, nil
}

// ParseDate parses an optional calendar date. Blank input yields nil.
func ParseDate(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return nil, domainerror.NewValidationError(
			FieldDate,
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be formatted as YYYY-MM-DD",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return &date, nil
}

// ParseAmount parses a user-entered amount. It rejects zero, negative and
// non-numeric input, and anything with a non-zero digit past the second
// decimal place.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if !amountPattern.MatchString(value) {
		return decimal.Zero, invalidAmount("amount must be a positive number with at most two decimal places")
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, invalidAmount("amount is not a valid number")
	}
	if !amount.IsPositive() {
		return decimal.Zero, invalidAmount("amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(entity.AmountScale)) {
		return decimal.Zero, invalidAmount("amount must have at most two decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, invalidAmount("amount is too large")
	}

	return amount.Truncate(entity.AmountScale), nil
}

func invalidAmount(message string) error {
	return domainerror.NewValidationError(
		FieldAmount,
		domainerror.ErrCodeInvalidTransactionAmount,
		message,
		domainerror.ErrInvalidTransactionAmount,
	)
}

// BuildRecord turns a validated draft into a record. With no existing record
// it creates a fresh one dated now unless the draft carries a date. With an
// existing record the id, creation time and date are carried over, and the
// date only changes when the draft explicitly supplies one.
func BuildRecord(v *ValidatedDraft, existing *entity.Transaction, now time.Time) *entity.Transaction {
	if existing == nil {
		date := now
		if v.Date != nil {
			date = *v.Date
		}
		record := entity.NewTransaction(v.Name, v.Note, v.Category, v.Kind, v.Amount, date)
		record.CreatedAt = now.UTC()
		record.UpdatedAt = now.UTC()
		return record
	}

	date := existing.Date
	if v.Date != nil {
		date = entity.TruncateToDate(*v.Date)
	}

	return &entity.Transaction{
		ID:        existing.ID,
		Name:      v.Name,
		Note:      v.Note,
		Category:  v.Category,
		Kind:      v.Kind,
		Direction: entity.DirectionForKind(v.Kind),
		Amount:    v.Amount,
		Date:      date,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now.UTC(),
	}
}
