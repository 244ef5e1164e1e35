// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategorySet holds the categories offered for each transaction kind.
// It is configuration data; AllowCustom lets drafts use names outside the lists.
type CategorySet struct {
	Income      []string
	Expense     []string
	AllowCustom bool
}

// NewCategorySet creates a CategorySet, copying the given lists.
func NewCategorySet(income, expense []string, allowCustom bool) CategorySet {
	return CategorySet{
		Income:      append([]string(nil), income...),
		Expense:     append([]string(nil), expense...),
		AllowCustom: allowCustom,
	}
}

// ForKind returns the categories offered for a kind.
func (s CategorySet) ForKind(kind TransactionKind) []string {
	switch kind {
	case TransactionKindIncome:
		return append([]string(nil), s.Income...)
	case TransactionKindExpense:
		return append([]string(nil), s.Expense...)
	default:
		return nil
	}
}

// Allows reports whether category may be used with kind.
func (s CategorySet) Allows(kind TransactionKind, category string) bool {
	if s.AllowCustom {
		return true
	}
	for _, c := range s.ForKind(kind) {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Canonical returns the configured spelling of category for kind, or the
// input unchanged when it is not in the list.
func (s CategorySet) Canonical(kind TransactionKind, category string) string {
	for _, c := range s.ForKind(kind) {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}

// CategoryTotal is the derived sum of expense amounts for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}
