package report

import (
	"sort"
	"strings"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
)

// Engine computes dashboard reports from an immutable snapshot of records
// and adjustments. Every builder is a pure function of its inputs: no I/O,
// no retained state between invocations, safe for concurrent use.
type Engine struct {
	vat decimal.Decimal
}

func NewEngine() *Engine {
	return &Engine{vat: DefaultVATMultiplier}
}

// NewEngineWithVAT overrides the ad spend VAT gross-up, e.g. from config.
func NewEngineWithVAT(vat decimal.Decimal) *Engine {
	if !vat.GreaterThan(decimal.Zero) {
		vat = DefaultVATMultiplier
	}
	return &Engine{vat: vat}
}

// DailyTrend groups by sale day and derives the margin rate per day, sorted
// ascending by date. Days whose adjusted sales sum to zero stay in the
// output; a trend line needs its flat days.
func (e *Engine) DailyTrend(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment, f entity.ReportFilter) []entity.DailyTrendRow {
	adjusted := adjustRecords(records, BuildAdjustmentIndex(records, adjustments), f.ApplyAdjustments)
	return dailyRows(adjusted)
}

func dailyRows(adjusted []AdjustedRecord) []entity.DailyTrendRow {
	buckets := fold(adjusted, func(r AdjustedRecord) string {
		return r.SaleDate.Format(dayLayout)
	})
	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Strings(days)

	rows := make([]entity.DailyTrendRow, 0, len(days))
	for _, d := range days {
		b := buckets[d]
		rows = append(rows, entity.DailyTrendRow{
			Date:          b.lastSaleDate,
			TotalSales:    b.totalSales,
			TotalProfit:   b.totalProfit,
			AdCost:        b.totalAdCost,
			TotalQuantity: b.totalQty,
			MarginRate:    safeRate(b.totalProfit, b.totalSales),
		})
	}
	return rows
}

// Breakdown groups by option, or by product name when rollupByProduct is
// set (summing across all options sharing the name). Zero-sales buckets are
// dropped as noise. Rows are sorted by total sales descending; ties break
// on product name, then option name, ascending.
func (e *Engine) Breakdown(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment, f entity.ReportFilter, rollupByProduct bool) []entity.OptionBreakdownRow {
	adjusted := adjustRecords(records, BuildAdjustmentIndex(records, adjustments), f.ApplyAdjustments)
	return e.breakdownRows(adjusted, rollupByProduct)
}

func (e *Engine) breakdownRows(adjusted []AdjustedRecord, rollupByProduct bool) []entity.OptionBreakdownRow {
	var buckets []*bucket
	if rollupByProduct {
		for _, b := range fold(adjusted, func(r AdjustedRecord) string { return r.ProductName }) {
			b.optionId = 0
			b.optionName = ""
			buckets = append(buckets, b)
		}
	} else {
		for _, b := range fold(adjusted, func(r AdjustedRecord) int { return r.OptionId }) {
			buckets = append(buckets, b)
		}
	}

	rows := make([]entity.OptionBreakdownRow, 0, len(buckets))
	for _, b := range buckets {
		if b.totalSales.IsZero() {
			continue
		}
		rs := ratiosOf(b, e.vat)
		rows = append(rows, entity.OptionBreakdownRow{
			OptionId:      b.optionId,
			ProductName:   b.productName,
			OptionName:    b.optionName,
			TotalSales:    b.totalSales,
			TotalProfit:   b.totalProfit,
			TotalCost:     b.totalCost,
			TotalAdCost:   b.totalAdCost,
			TotalQuantity: b.totalQty,
			MarginRate:    rs.marginRate,
			CostRate:      rs.costRate,
			AdCostRate:    rs.adCostRate,
			Roas:          rs.roas,
			LastSaleDate:  b.lastSaleDate,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSales.Equal(rows[j].TotalSales) {
			return rows[i].TotalSales.GreaterThan(rows[j].TotalSales)
		}
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].OptionName < rows[j].OptionName
	})
	return rows
}

// PeriodSummary folds the entire filtered range into a single bucket. An
// empty range yields a well-formed zero summary so consumers never need
// null checks.
func (e *Engine) PeriodSummary(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment, f entity.ReportFilter) entity.PeriodSummary {
	adjusted := adjustRecords(records, BuildAdjustmentIndex(records, adjustments), f.ApplyAdjustments)
	buckets := fold(adjusted, func(AdjustedRecord) struct{} { return struct{}{} })

	s := entity.PeriodSummary{}
	if b, ok := buckets[struct{}{}]; ok {
		s.TotalSales = b.totalSales
		s.TotalProfit = b.totalProfit
		s.TotalAdCost = b.totalAdCost
		s.TotalQuantity = b.totalQty
		s.AvgMarginRate = safeRate(b.totalProfit, b.totalSales)
	}

	names := make(map[string]struct{}, len(records))
	for _, r := range records {
		names[r.ProductName] = struct{}{}
	}
	s.UniqueProducts = len(names)
	s.DateRange = dateRangeOf(records)
	return s
}

func dateRangeOf(records []entity.IntegratedRecord) string {
	if len(records) == 0 {
		return ""
	}
	min, max := records[0].SaleDate, records[0].SaleDate
	for _, r := range records[1:] {
		if r.SaleDate.Before(min) {
			min = r.SaleDate
		}
		if r.SaleDate.After(max) {
			max = r.SaleDate
		}
	}
	return min.Format(dayLayout) + " ~ " + max.Format(dayLayout)
}

// ProductTrend is the daily trend narrowed to one product name (exact,
// case-insensitive) and optionally one option, for drill-down views.
// optionId zero means all options of the product.
func (e *Engine) ProductTrend(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment, f entity.ReportFilter, productName string, optionId int) []entity.DailyTrendRow {
	matched := make([]entity.IntegratedRecord, 0, len(records))
	for _, r := range records {
		if !strings.EqualFold(r.ProductName, productName) {
			continue
		}
		if optionId != 0 && r.OptionId != optionId {
			continue
		}
		matched = append(matched, r)
	}
	adjusted := adjustRecords(matched, BuildAdjustmentIndex(matched, adjustments), f.ApplyAdjustments)
	return dailyRows(adjusted)
}

// ROASBreakdown keeps only records that actually spent on ads, then ranks
// them like Breakdown. A product with zero ad cost never appears in the
// rows, however well it sold. The overall ROAS comes from the period-wide
// sums of the full filtered set.
func (e *Engine) ROASBreakdown(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment, f entity.ReportFilter) entity.RoasBreakdown {
	idx := BuildAdjustmentIndex(records, adjustments)
	adjusted := adjustRecords(records, idx, f.ApplyAdjustments)

	withAds := make([]AdjustedRecord, 0, len(adjusted))
	totalSales, totalAdCost := decimal.Zero, decimal.Zero
	for _, r := range adjusted {
		totalSales = totalSales.Add(r.AdjustedSales)
		totalAdCost = totalAdCost.Add(r.AdCost)
		if r.AdCost.GreaterThan(decimal.Zero) {
			withAds = append(withAds, r)
		}
	}

	return entity.RoasBreakdown{
		Rows:        e.breakdownRows(withAds, false),
		OverallRoas: safeRate(totalSales, totalAdCost),
	}
}
