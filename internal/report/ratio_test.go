package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSafeRateZeroAndNegativeDenominators(t *testing.T) {
	cases := []struct {
		name string
		num  int64
		den  int64
		want string
	}{
		{"positive", 2000, 10000, "20"},
		{"zero denominator", 2000, 0, "0"},
		{"negative denominator", 2000, -10000, "0"},
		{"negative numerator", -500, 10000, "-5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := safeRate(decimal.NewFromInt(tc.num), decimal.NewFromInt(tc.den))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestRatiosOfZeroSalesBucket(t *testing.T) {
	b := &bucket{
		totalProfit: decimal.NewFromInt(-300),
		totalAdCost: decimal.NewFromInt(1000),
		totalCost:   decimal.NewFromInt(4000),
	}
	rs := ratiosOf(b, DefaultVATMultiplier)
	assert.True(t, rs.marginRate.IsZero())
	assert.True(t, rs.costRate.IsZero())
	assert.True(t, rs.adCostRate.IsZero())
	// roas guards on ad cost, which is positive here
	assert.True(t, rs.roas.IsZero())
}

func TestRatiosOfAppliesVATGrossUp(t *testing.T) {
	b := &bucket{
		totalSales:  decimal.NewFromInt(10000),
		totalProfit: decimal.NewFromInt(2000),
		totalCost:   decimal.NewFromInt(7000),
		totalAdCost: decimal.NewFromInt(1000),
	}
	rs := ratiosOf(b, DefaultVATMultiplier)
	assert.True(t, rs.marginRate.Equal(decimal.NewFromInt(20)), "margin %s", rs.marginRate)
	assert.True(t, rs.costRate.Equal(decimal.NewFromInt(30)), "cost %s", rs.costRate)
	// 1000 * 1.1 / 10000 * 100 = 11
	assert.True(t, rs.adCostRate.Equal(decimal.NewFromInt(11)), "ad cost %s", rs.adCostRate)
	// 10000 / 1000 * 100 = 1000
	assert.True(t, rs.roas.Equal(decimal.NewFromInt(1000)), "roas %s", rs.roas)
}

func TestRatiosOfZeroAdCostRoas(t *testing.T) {
	b := &bucket{
		totalSales:  decimal.NewFromInt(10000),
		totalProfit: decimal.NewFromInt(2000),
	}
	rs := ratiosOf(b, DefaultVATMultiplier)
	assert.True(t, rs.roas.IsZero())
	assert.True(t, rs.adCostRate.IsZero())
}
