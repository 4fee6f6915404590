package dto

import (
	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// Ratios and amounts are rounded to two decimal places at this boundary
// only. All upstream math runs on exact decimals.
const roundPlaces = 2

// DailyTrendRow is a single day in the daily trend report.
type DailyTrendRow struct {
	Date          string          `json:"date"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	AdCost        decimal.Decimal `json:"ad_cost"`
	TotalQuantity int             `json:"total_quantity"`
	MarginRate    decimal.Decimal `json:"margin_rate"`
}

// BreakdownRow is a per-option or per-product aggregate.
type BreakdownRow struct {
	OptionId      int             `json:"option_id,omitempty"`
	ProductName   string          `json:"product_name"`
	OptionName    string          `json:"option_name,omitempty"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalAdCost   decimal.Decimal `json:"total_ad_cost"`
	TotalQuantity int             `json:"total_quantity"`
	MarginRate    decimal.Decimal `json:"margin_rate"`
	CostRate      decimal.Decimal `json:"cost_rate"`
	AdCostRate    decimal.Decimal `json:"ad_cost_rate"`
	Roas          decimal.Decimal `json:"roas"`
	LastSaleDate  string          `json:"last_sale_date"`
}

// PeriodSummary is the roll-up over the whole filtered period.
type PeriodSummary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalAdCost    decimal.Decimal `json:"total_ad_cost"`
	TotalQuantity  int             `json:"total_quantity"`
	AvgMarginRate  decimal.Decimal `json:"avg_margin_rate"`
	UniqueProducts int             `json:"unique_products"`
	DateRange      string          `json:"date_range"`
}

// RoasBreakdown lists ad-driven options with an overall figure for the
// whole filtered set.
type RoasBreakdown struct {
	Rows        []BreakdownRow  `json:"rows"`
	OverallRoas decimal.Decimal `json:"overall_roas"`
}

func ConvertEntityDailyTrendRow(r entity.DailyTrendRow) DailyTrendRow {
	return DailyTrendRow{
		Date:          r.Date.Format(dayLayout),
		TotalSales:    r.TotalSales.Round(roundPlaces),
		TotalProfit:   r.TotalProfit.Round(roundPlaces),
		AdCost:        r.AdCost.Round(roundPlaces),
		TotalQuantity: r.TotalQuantity,
		MarginRate:    r.MarginRate.Round(roundPlaces),
	}
}

func ConvertEntityDailyTrend(rows []entity.DailyTrendRow) []DailyTrendRow {
	out := make([]DailyTrendRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ConvertEntityDailyTrendRow(r))
	}
	return out
}

func ConvertEntityBreakdownRow(r entity.OptionBreakdownRow) BreakdownRow {
	return BreakdownRow{
		OptionId:      r.OptionId,
		ProductName:   r.ProductName,
		OptionName:    r.OptionName,
		TotalSales:    r.TotalSales.Round(roundPlaces),
		TotalProfit:   r.TotalProfit.Round(roundPlaces),
		TotalCost:     r.TotalCost.Round(roundPlaces),
		TotalAdCost:   r.TotalAdCost.Round(roundPlaces),
		TotalQuantity: r.TotalQuantity,
		MarginRate:    r.MarginRate.Round(roundPlaces),
		CostRate:      r.CostRate.Round(roundPlaces),
		AdCostRate:    r.AdCostRate.Round(roundPlaces),
		Roas:          r.Roas.Round(roundPlaces),
		LastSaleDate:  r.LastSaleDate.Format(dayLayout),
	}
}

func ConvertEntityBreakdown(rows []entity.OptionBreakdownRow) []BreakdownRow {
	out := make([]BreakdownRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ConvertEntityBreakdownRow(r))
	}
	return out
}

func ConvertEntityPeriodSummary(s entity.PeriodSummary) PeriodSummary {
	return PeriodSummary{
		TotalSales:     s.TotalSales.Round(roundPlaces),
		TotalProfit:    s.TotalProfit.Round(roundPlaces),
		TotalAdCost:    s.TotalAdCost.Round(roundPlaces),
		TotalQuantity:  s.TotalQuantity,
		AvgMarginRate:  s.AvgMarginRate.Round(roundPlaces),
		UniqueProducts: s.UniqueProducts,
		DateRange:      s.DateRange,
	}
}

func ConvertEntityRoasBreakdown(b entity.RoasBreakdown) RoasBreakdown {
	return RoasBreakdown{
		Rows:        ConvertEntityBreakdown(b.Rows),
		OverallRoas: b.OverallRoas.Round(roundPlaces),
	}
}
