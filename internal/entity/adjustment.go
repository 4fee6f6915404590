package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FakePurchaseAdjustment marks self-purchase units on a given day/option
// whose revenue, quantity and cost must be excluded from true performance
// metrics. Rows are managed by a separate adjustment workflow and are
// read-only for the metrics engine.
type FakePurchaseAdjustment struct {
	Id        int             `db:"id"`
	TenantId  int             `db:"tenant_id"`
	OptionId  int             `db:"option_id"`
	SaleDate  time.Time       `db:"sale_date"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}
