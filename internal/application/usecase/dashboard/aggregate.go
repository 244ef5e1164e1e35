// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/companion/internal/domain/entity"
)

// categoryBucket accumulates one category while aggregating.
type categoryBucket struct {
	category string
	total    decimal.Decimal
	count    int
}

// AggregateByCategory sums expense amounts per category. Income is ignored.
// Categories appear in the order they first occur in the input. An empty
// input yields an empty, non-nil slice.
func AggregateByCategory(transactions []*entity.Transaction) []entity.CategoryTotal {
	buckets := aggregate(transactions)

	totals := make([]entity.CategoryTotal, 0, len(buckets))
	for _, b := range buckets {
		totals = append(totals, entity.CategoryTotal{
			Category: b.category,
			Total:    b.total,
		})
	}
	return totals
}

func aggregate(transactions []*entity.Transaction) []*categoryBucket {
	index := make(map[string]*categoryBucket)
	order := make([]*categoryBucket, 0)

	for _, t := range transactions {
		if t == nil || !t.IsExpense() {
			continue
		}

		bucket, ok := index[t.Category]
		if !ok {
			bucket = &categoryBucket{category: t.Category, total: decimal.Zero}
			index[t.Category] = bucket
			order = append(order, bucket)
		}
		bucket.total = bucket.total.Add(t.Amount)
		bucket.count++
	}

	return order
}
