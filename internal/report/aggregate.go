package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// bucket accumulates running sums for one grouping key during a single
// aggregation pass. Ad cost is summed raw: fake purchase deductions cover
// sales, quantity and cost only, never ad spend.
type bucket struct {
	optionId    int
	productName string
	optionName  string

	totalSales   decimal.Decimal
	totalProfit  decimal.Decimal
	totalAdCost  decimal.Decimal
	totalCost    decimal.Decimal
	totalQty     int
	lastSaleDate time.Time
}

// fold folds adjusted records into buckets keyed by the supplied grouping
// function in one pass. The per-key accumulation is commutative, so input
// order never affects totals; output ordering is the caller's concern.
func fold[K comparable](records []AdjustedRecord, key func(AdjustedRecord) K) map[K]*bucket {
	buckets := make(map[K]*bucket)
	for _, r := range records {
		k := key(r)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{
				optionId:    r.OptionId,
				productName: r.ProductName,
				optionName:  r.OptionName,
			}
			buckets[k] = b
		}
		b.totalSales = b.totalSales.Add(r.AdjustedSales)
		b.totalProfit = b.totalProfit.Add(r.AdjustedProfit)
		b.totalAdCost = b.totalAdCost.Add(r.AdCost)
		b.totalCost = b.totalCost.Add(r.AdjustedCost)
		b.totalQty += r.AdjustedQuantity
		if r.SaleDate.After(b.lastSaleDate) {
			b.lastSaleDate = r.SaleDate
		}
	}
	return buckets
}
