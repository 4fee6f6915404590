package report

import (
	"testing"
	"time"

	"github.com/marginboard/marginboard-manager/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testRecord(optionId int, date string) entity.IntegratedRecord {
	return entity.IntegratedRecord{
		TenantId:      1,
		OptionId:      optionId,
		ProductName:   "Wool Socks",
		OptionName:    "Black / L",
		SaleDate:      day(date),
		SalesAmount:   decimal.NewFromInt(10000),
		SalesQuantity: 10,
		NetProfit:     decimal.NewFromInt(2000),
		TotalCost:     decimal.NewFromInt(7000),
		AdCost:        decimal.NewFromInt(500),
		UnitCost:      decimal.NewFromInt(400),
	}
}

func TestApplyAdjustmentNoMatchKeepsRawValues(t *testing.T) {
	rec := testRecord(11, "2024-03-01")
	idx := BuildAdjustmentIndex([]entity.IntegratedRecord{rec}, nil)

	got := applyAdjustment(rec, idx)
	assert.True(t, got.AdjustedSales.Equal(rec.SalesAmount))
	assert.Equal(t, rec.SalesQuantity, got.AdjustedQuantity)
	assert.True(t, got.AdjustedProfit.Equal(rec.NetProfit))
	assert.True(t, got.AdjustedCost.Equal(rec.TotalCost))
}

func TestApplyAdjustmentDeductionArithmetic(t *testing.T) {
	rec := testRecord(11, "2024-03-01")
	adj := entity.FakePurchaseAdjustment{
		TenantId:  1,
		OptionId:  11,
		SaleDate:  day("2024-03-01"),
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(1000),
	}
	idx := BuildAdjustmentIndex([]entity.IntegratedRecord{rec}, []entity.FakePurchaseAdjustment{adj})

	got := applyAdjustment(rec, idx)
	// sales_deduction=3000, quantity_deduction=3, cost_saved=3*400=1200
	assert.True(t, got.AdjustedSales.Equal(decimal.NewFromInt(7000)), "adjusted sales %s", got.AdjustedSales)
	assert.Equal(t, 7, got.AdjustedQuantity)
	assert.True(t, got.AdjustedProfit.Equal(decimal.NewFromInt(200)), "adjusted profit %s", got.AdjustedProfit)
	assert.True(t, got.AdjustedCost.Equal(decimal.NewFromInt(5800)), "adjusted cost %s", got.AdjustedCost)
}

func TestBuildAdjustmentIndexMissingRecordZeroUnitCost(t *testing.T) {
	adj := entity.FakePurchaseAdjustment{
		TenantId:  1,
		OptionId:  99,
		SaleDate:  day("2024-03-01"),
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(500),
	}
	idx := BuildAdjustmentIndex(nil, []entity.FakePurchaseAdjustment{adj})

	unitCost, ok := idx.UnitCost(day("2024-03-01"), 99)
	assert.True(t, ok)
	assert.True(t, unitCost.IsZero())

	// the deduction still reduces sales and quantity, but not cost
	rec := testRecord(99, "2024-03-01")
	got := applyAdjustment(rec, idx)
	assert.True(t, got.AdjustedSales.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 8, got.AdjustedQuantity)
	assert.True(t, got.AdjustedCost.Equal(rec.TotalCost))
}

func TestBuildAdjustmentIndexDuplicateLastWins(t *testing.T) {
	rec := testRecord(11, "2024-03-01")
	first := entity.FakePurchaseAdjustment{
		TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"),
		Quantity: 1, UnitPrice: decimal.NewFromInt(1000),
	}
	second := entity.FakePurchaseAdjustment{
		TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"),
		Quantity: 2, UnitPrice: decimal.NewFromInt(1000),
	}
	idx := BuildAdjustmentIndex([]entity.IntegratedRecord{rec}, []entity.FakePurchaseAdjustment{first, second})

	got := applyAdjustment(rec, idx)
	assert.True(t, got.AdjustedSales.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 8, got.AdjustedQuantity)
}

func TestApplyAdjustmentNegativeResultsAllowed(t *testing.T) {
	rec := testRecord(11, "2024-03-01")
	adj := entity.FakePurchaseAdjustment{
		TenantId: 1, OptionId: 11, SaleDate: day("2024-03-01"),
		Quantity: 20, UnitPrice: decimal.NewFromInt(1000),
	}
	idx := BuildAdjustmentIndex([]entity.IntegratedRecord{rec}, []entity.FakePurchaseAdjustment{adj})

	got := applyAdjustment(rec, idx)
	assert.True(t, got.AdjustedSales.IsNegative())
	assert.Equal(t, -10, got.AdjustedQuantity)
}
