package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntegratedRecord is one day of consolidated sales for a single sellable
// option. Rows are produced by the ingestion pipeline, one per
// (tenant_id, option_id, sale_date), and are read-only for the metrics
// engine.
type IntegratedRecord struct {
	Id          int       `db:"id"`
	TenantId    int       `db:"tenant_id"`
	OptionId    int       `db:"option_id"`
	ProductName string    `db:"product_name"`
	OptionName  string    `db:"option_name"`
	SaleDate    time.Time `db:"sale_date"`

	SalesAmount   decimal.Decimal `db:"sales_amount"`
	SalesQuantity int             `db:"sales_quantity"`
	NetProfit     decimal.Decimal `db:"net_profit"`
	TotalCost     decimal.Decimal `db:"total_cost"`
	AdCost        decimal.Decimal `db:"ad_cost"`
	// UnitCost is the per-unit cost written by the ingestion pipeline.
	// It may embed fee/VAT components; the engine treats it as opaque.
	UnitCost decimal.Decimal `db:"unit_cost"`
}
