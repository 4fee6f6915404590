package report

import (
	"time"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// dayOptionKey identifies the (sale day, option) an adjustment attaches to.
// The day is formatted rather than kept as time.Time so records and
// adjustments loaded with different locations still collide on the same key.
type dayOptionKey struct {
	day      string
	optionId int
}

func keyOf(date time.Time, optionId int) dayOptionKey {
	return dayOptionKey{day: date.Format(dayLayout), optionId: optionId}
}

// deduction holds the three deltas derived from one adjustment row.
type deduction struct {
	sales     decimal.Decimal
	quantity  int
	costSaved decimal.Decimal
}

// AdjustmentIndex is an O(1) lookup of fake purchase deductions keyed by
// (day, option). Built once per report invocation and probed per record.
type AdjustmentIndex struct {
	deductions map[dayOptionKey]deduction
	unitCosts  map[dayOptionKey]decimal.Decimal
}

// BuildAdjustmentIndex resolves each adjustment against the candidate record
// set: unit cost comes from the matching record, or zero when no record
// exists. A missing unit cost is not an error; the deduction still reduces
// sales and quantity, just not cost. Duplicate (day, option) adjustments
// should not occur upstream; when they do, the later one in the input slice
// wins, which keeps the resolver deterministic for a given fetch order.
func BuildAdjustmentIndex(records []entity.IntegratedRecord, adjustments []entity.FakePurchaseAdjustment) AdjustmentIndex {
	idx := AdjustmentIndex{
		deductions: make(map[dayOptionKey]deduction, len(adjustments)),
		unitCosts:  make(map[dayOptionKey]decimal.Decimal, len(adjustments)),
	}
	unitCostByKey := make(map[dayOptionKey]decimal.Decimal, len(records))
	for _, r := range records {
		unitCostByKey[keyOf(r.SaleDate, r.OptionId)] = r.UnitCost
	}
	for _, a := range adjustments {
		k := keyOf(a.SaleDate, a.OptionId)
		unitCost := unitCostByKey[k]
		qty := decimal.NewFromInt(int64(a.Quantity))
		idx.deductions[k] = deduction{
			sales:     a.UnitPrice.Mul(qty),
			quantity:  a.Quantity,
			costSaved: unitCost.Mul(qty),
		}
		idx.unitCosts[k] = unitCost
	}
	return idx
}

// UnitCost returns the resolved unit cost for a (day, option) pair and
// whether an adjustment was registered for it.
func (idx AdjustmentIndex) UnitCost(date time.Time, optionId int) (decimal.Decimal, bool) {
	c, ok := idx.unitCosts[keyOf(date, optionId)]
	return c, ok
}

// AdjustedRecord is a record with fake purchase deductions applied. When no
// adjustment matches, the adjusted fields equal the raw ones. Adjusted
// quantity and profit may legitimately go negative when deductions exceed
// the raw values; downstream aggregation tolerates that.
type AdjustedRecord struct {
	entity.IntegratedRecord
	AdjustedSales    decimal.Decimal
	AdjustedQuantity int
	AdjustedProfit   decimal.Decimal
	AdjustedCost     decimal.Decimal
}

func applyAdjustment(rec entity.IntegratedRecord, idx AdjustmentIndex) AdjustedRecord {
	ar := rawAdjusted(rec)
	d, ok := idx.deductions[keyOf(rec.SaleDate, rec.OptionId)]
	if !ok {
		return ar
	}
	ar.AdjustedSales = rec.SalesAmount.Sub(d.sales)
	ar.AdjustedQuantity = rec.SalesQuantity - d.quantity
	ar.AdjustedProfit = rec.NetProfit.Sub(d.sales).Add(d.costSaved)
	ar.AdjustedCost = rec.TotalCost.Sub(d.costSaved)
	return ar
}

func rawAdjusted(rec entity.IntegratedRecord) AdjustedRecord {
	return AdjustedRecord{
		IntegratedRecord: rec,
		AdjustedSales:    rec.SalesAmount,
		AdjustedQuantity: rec.SalesQuantity,
		AdjustedProfit:   rec.NetProfit,
		AdjustedCost:     rec.TotalCost,
	}
}

// adjustRecords applies the index to every record, or passes raw values
// through when apply is false (the "before adjustment" view still resolves
// the index so both views share one code path).
func adjustRecords(records []entity.IntegratedRecord, idx AdjustmentIndex, apply bool) []AdjustedRecord {
	out := make([]AdjustedRecord, len(records))
	for i, r := range records {
		if apply {
			out[i] = applyAdjustment(r, idx)
		} else {
			out[i] = rawAdjusted(r)
		}
	}
	return out
}
