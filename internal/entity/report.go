package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTrendRow is one day in a trend line. Days with zero sales are kept
// so charts stay continuous over the days that have records.
type DailyTrendRow struct {
	Date          time.Time
	TotalSales    decimal.Decimal
	TotalProfit   decimal.Decimal
	AdCost        decimal.Decimal
	TotalQuantity int
	MarginRate    decimal.Decimal
}

// OptionBreakdownRow is one product option (or one product when options are
// rolled up) with all derived ratios. Rows with zero total sales are
// filtered out before this shape is produced.
type OptionBreakdownRow struct {
	OptionId    int
	ProductName string
	OptionName  string

	TotalSales    decimal.Decimal
	TotalProfit   decimal.Decimal
	TotalCost     decimal.Decimal
	TotalAdCost   decimal.Decimal
	TotalQuantity int

	MarginRate   decimal.Decimal
	CostRate     decimal.Decimal
	AdCostRate   decimal.Decimal
	Roas         decimal.Decimal
	LastSaleDate time.Time
}

// PeriodSummary is a single bucket over the whole filtered range.
// DateRange is "<min> ~ <max>" in YYYY-MM-DD, or empty when no records
// matched.
type PeriodSummary struct {
	TotalSales     decimal.Decimal
	TotalProfit    decimal.Decimal
	TotalAdCost    decimal.Decimal
	TotalQuantity  int
	AvgMarginRate  decimal.Decimal
	UniqueProducts int
	DateRange      string
}

// RoasBreakdown ranks options that actually spent on ads. OverallRoas is
// computed from the period-wide sums of the full filtered record set, not
// just the rows shown.
type RoasBreakdown struct {
	Rows        []OptionBreakdownRow
	OverallRoas decimal.Decimal
}
