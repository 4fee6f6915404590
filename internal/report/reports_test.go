package report

import (
	"math/rand"
	"testing"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(optionId int, product, option, date string, sales, profit, cost, adCost int64, qty int) entity.IntegratedRecord {
	return entity.IntegratedRecord{
		TenantId:      1,
		OptionId:      optionId,
		ProductName:   product,
		OptionName:    option,
		SaleDate:      day(date),
		SalesAmount:   decimal.NewFromInt(sales),
		SalesQuantity: qty,
		NetProfit:     decimal.NewFromInt(profit),
		TotalCost:     decimal.NewFromInt(cost),
		AdCost:        decimal.NewFromInt(adCost),
		UnitCost:      decimal.NewFromInt(400),
	}
}

func defaultFilter() entity.ReportFilter {
	return entity.NewReportFilter(1)
}

func TestDailyTrendSumsOptionsPerDay(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(12, "Wool Socks", "Gray / M", "2024-03-01", 3000, 500, 2200, 0, 3),
	}

	rows := NewEngine().DailyTrend(records, nil, defaultFilter())
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(8000)), "sales %s", rows[0].TotalSales)
	assert.True(t, rows[0].AdCost.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 8, rows[0].TotalQuantity)
	// margin = 2000 / 8000 * 100 = 25
	assert.True(t, rows[0].MarginRate.Equal(decimal.NewFromInt(25)), "margin %s", rows[0].MarginRate)
}

func TestDailyTrendKeepsZeroSalesDays(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 0, 0, 0, 300, 0),
		record(11, "Wool Socks", "Black / L", "2024-03-02", 5000, 1500, 3000, 500, 5),
	}

	rows := NewEngine().DailyTrend(records, nil, defaultFilter())
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-01", rows[0].Date.Format(dayLayout))
	assert.True(t, rows[0].TotalSales.IsZero())
	assert.True(t, rows[0].MarginRate.IsZero())
	assert.Equal(t, "2024-03-02", rows[1].Date.Format(dayLayout))
}

func TestBreakdownExcludesZeroSalesBuckets(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(12, "Linen Shirt", "White / M", "2024-03-01", 0, 0, 0, 200, 0),
	}

	rows := NewEngine().Breakdown(records, nil, defaultFilter(), false)
	require.Len(t, rows, 1)
	assert.Equal(t, 11, rows[0].OptionId)
	assert.Equal(t, "Wool Socks", rows[0].ProductName)
}

func TestBreakdownSortsBySalesDescThenName(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(13, "Wool Socks", "Gray / M", "2024-03-01", 4000, 900, 2800, 0, 4),
		record(11, "Linen Shirt", "White / M", "2024-03-01", 4000, 1200, 2500, 100, 2),
		record(12, "Denim Jacket", "Blue / L", "2024-03-01", 9000, 2500, 6000, 800, 3),
	}

	rows := NewEngine().Breakdown(records, nil, defaultFilter(), false)
	require.Len(t, rows, 3)
	assert.Equal(t, "Denim Jacket", rows[0].ProductName)
	// 4000 tie: lexicographically smaller product name first
	assert.Equal(t, "Linen Shirt", rows[1].ProductName)
	assert.Equal(t, "Wool Socks", rows[2].ProductName)
}

func TestBreakdownRollupByProduct(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(12, "Wool Socks", "Gray / M", "2024-03-02", 3000, 500, 2200, 300, 3),
	}

	rows := NewEngine().Breakdown(records, nil, defaultFilter(), true)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].OptionId)
	assert.Empty(t, rows[0].OptionName)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 8, rows[0].TotalQuantity)
	assert.Equal(t, "2024-03-02", rows[0].LastSaleDate.Format(dayLayout))
}

func TestBreakdownAdCostStaysRawUnderAdjustment(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 10000, 2000, 7000, 500, 10),
	}
	adjustments := []entity.FakePurchaseAdjustment{
		{TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"), Quantity: 3, UnitPrice: decimal.NewFromInt(1000)},
	}

	rows := NewEngine().Breakdown(records, adjustments, defaultFilter(), false)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(7000)))
	assert.True(t, rows[0].TotalAdCost.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 7, rows[0].TotalQuantity)
}

func TestBreakdownBeforeAdjustmentView(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 10000, 2000, 7000, 500, 10),
	}
	adjustments := []entity.FakePurchaseAdjustment{
		{TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"), Quantity: 3, UnitPrice: decimal.NewFromInt(1000)},
	}
	f := defaultFilter()
	f.ApplyAdjustments = false

	rows := NewEngine().Breakdown(records, adjustments, f, false)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 10, rows[0].TotalQuantity)
}

func TestFoldIsOrderIndependent(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(11, "Wool Socks", "Black / L", "2024-03-02", 3000, 500, 2200, 300, 3),
		record(12, "Wool Socks", "Gray / M", "2024-03-01", 4000, 900, 2800, 0, 4),
		record(13, "Linen Shirt", "White / M", "2024-03-03", 9000, 2500, 6000, 800, 3),
	}
	adjustments := []entity.FakePurchaseAdjustment{
		{TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"), Quantity: 1, UnitPrice: decimal.NewFromInt(1000)},
	}
	eng := NewEngine()
	want := eng.Breakdown(records, adjustments, defaultFilter(), false)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]entity.IntegratedRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := eng.Breakdown(shuffled, adjustments, defaultFilter(), false)
		require.Len(t, got, len(want))
		for j := range want {
			assert.Equal(t, want[j].OptionId, got[j].OptionId)
			assert.True(t, want[j].TotalSales.Equal(got[j].TotalSales))
			assert.True(t, want[j].TotalProfit.Equal(got[j].TotalProfit))
			assert.Equal(t, want[j].TotalQuantity, got[j].TotalQuantity)
		}
	}
}

func TestPeriodSummaryEmptyRange(t *testing.T) {
	s := NewEngine().PeriodSummary(nil, nil, defaultFilter())
	assert.True(t, s.TotalSales.IsZero())
	assert.True(t, s.TotalProfit.IsZero())
	assert.True(t, s.TotalAdCost.IsZero())
	assert.Equal(t, 0, s.TotalQuantity)
	assert.True(t, s.AvgMarginRate.IsZero())
	assert.Equal(t, 0, s.UniqueProducts)
	assert.Equal(t, "", s.DateRange)
}

func TestPeriodSummaryCountsAndRange(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-05", 5000, 1500, 3000, 500, 5),
		record(12, "Wool Socks", "Gray / M", "2024-03-01", 3000, 500, 2200, 0, 3),
		record(13, "Linen Shirt", "White / M", "2024-03-09", 9000, 2500, 6000, 800, 3),
	}

	s := NewEngine().PeriodSummary(records, nil, defaultFilter())
	assert.True(t, s.TotalSales.Equal(decimal.NewFromInt(17000)))
	assert.Equal(t, 11, s.TotalQuantity)
	assert.Equal(t, 2, s.UniqueProducts)
	assert.Equal(t, "2024-03-01 ~ 2024-03-09", s.DateRange)
}

func TestProductTrendMatchesOneProduct(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(12, "Wool Socks", "Gray / M", "2024-03-02", 3000, 500, 2200, 0, 3),
		record(13, "Linen Shirt", "White / M", "2024-03-01", 9000, 2500, 6000, 800, 3),
	}
	eng := NewEngine()

	rows := eng.ProductTrend(records, nil, defaultFilter(), "wool socks", 0)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].TotalSales.Equal(decimal.NewFromInt(5000)))
	assert.True(t, rows[1].TotalSales.Equal(decimal.NewFromInt(3000)))

	rows = eng.ProductTrend(records, nil, defaultFilter(), "Wool Socks", 12)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-02", rows[0].Date.Format(dayLayout))
}

func TestROASBreakdownExcludesZeroAdCost(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(11, "Wool Socks", "Black / L", "2024-03-01", 5000, 1500, 3000, 500, 5),
		record(12, "Linen Shirt", "White / M", "2024-03-01", 9000, 2500, 6000, 0, 3),
	}

	got := NewEngine().ROASBreakdown(records, nil, defaultFilter())
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 11, got.Rows[0].OptionId)
	// option 11: 5000 / 500 * 100 = 1000
	assert.True(t, got.Rows[0].Roas.Equal(decimal.NewFromInt(1000)), "row roas %s", got.Rows[0].Roas)
	// overall: 14000 / 500 * 100 = 2800
	assert.True(t, got.OverallRoas.Equal(decimal.NewFromInt(2800)), "overall %s", got.OverallRoas)
}

func TestROASBreakdownNoAdSpend(t *testing.T) {
	records := []entity.IntegratedRecord{
		record(12, "Linen Shirt", "White / M", "2024-03-01", 9000, 2500, 6000, 0, 3),
	}

	got := NewEngine().ROASBreakdown(records, nil, defaultFilter())
	assert.Empty(t, got.Rows)
	assert.True(t, got.OverallRoas.IsZero())
}
