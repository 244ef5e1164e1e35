// Package conversation contains the assistant conversation use cases.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/domain/entity"
)

// StaticResponder always answers with the same text.
type StaticResponder struct {
	Text string
}

// NewStaticResponder creates a new StaticResponder instance.
func NewStaticResponder(text string) *StaticResponder {
	return &StaticResponder{Text: text}
}

// Reply implements adapter.Responder.
func (r *StaticResponder) Reply(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
	return r.Text, nil
}

// KeywordRule maps any of its keywords to a reply.
type KeywordRule struct {
	Keywords []string
	Reply    string
}

// KeywordResponder answers with the first rule whose keyword appears in the
// user's message, or with the fallback.
type KeywordResponder struct {
	rules    []KeywordRule
	fallback adapter.Responder
}

// NewKeywordResponder creates a new KeywordResponder instance.
func NewKeywordResponder(rules []KeywordRule, fallback adapter.Responder) *KeywordResponder {
	return &KeywordResponder{
		rules:    rules,
		fallback: fallback,
	}
}

// DefaultKeywordRules is the built-in assistant script.
var DefaultKeywordRules = []KeywordRule{
	{
		Keywords: []string{"budget"},
		Reply:    "A simple start is to note your fixed costs first, then set a limit for each expense category.",
	},
	{
		Keywords: []string{"save", "saving"},
		Reply:    "Try creating a goal with a target amount and update its progress whenever you put money aside.",
	},
	{
		Keywords: []string{"goal"},
		Reply:    "Goals track progress toward a target. Reaching the target marks them completed.",
	},
	{
		Keywords: []string{"hello", "hi", "hey"},
		Reply:    "Hello! Ask me about your spending, your balance or your goals.",
	},
}

// Reply implements adapter.Responder.
func (r *KeywordResponder) Reply(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
	words := tokenize(trigger.Text)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if _, ok := words[strings.ToLower(keyword)]; ok {
				return rule.Reply, nil
			}
		}
	}
	return r.fallback.Reply(ctx, history, trigger)
}

// LedgerResponder answers balance and spending questions from the ledger and
// hands everything else to the next responder.
type LedgerResponder struct {
	store adapter.TransactionStore
	next  adapter.Responder
}

// NewLedgerResponder creates a new LedgerResponder instance.
func NewLedgerResponder(store adapter.TransactionStore, next adapter.Responder) *LedgerResponder {
	return &LedgerResponder{
		store: store,
		next:  next,
	}
}

// Reply implements adapter.Responder.
func (r *LedgerResponder) Reply(ctx context.Context, history []entity.ChatMessage, trigger entity.ChatMessage) (string, error) {
	words := tokenize(trigger.Text)

	_, balance := words["balance"]
	_, spent := words["spent"]
	_, spending := words["spending"]
	if !balance && !spent && !spending {
		return r.next.Reply(ctx, history, trigger)
	}

	transactions, err := r.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read ledger: %w", err)
	}
	totals := entity.SumTotals(transactions)

	if balance {
		return fmt.Sprintf("Your income is %s and your expenses are %s, leaving a balance of %s.",
			totals.IncomeTotal.StringFixed(entity.AmountScale),
			totals.ExpenseTotal.StringFixed(entity.AmountScale),
			totals.NetTotal.StringFixed(entity.AmountScale),
		), nil
	}
	return fmt.Sprintf("You have spent %s across %d transactions.",
		totals.ExpenseTotal.StringFixed(entity.AmountScale),
		countExpenses(transactions),
	), nil
}

func countExpenses(transactions []*entity.Transaction) int {
	n := 0
	for _, t := range transactions {
		if t.IsExpense() {
			n++
		}
	}
	return n
}

// tokenize lowercases text and splits it into a set of words.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})

	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}
