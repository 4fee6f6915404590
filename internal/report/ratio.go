package report

import "github.com/shopspring/decimal"

// DefaultVATMultiplier grosses ad spend up by 10% VAT before computing the
// ad cost rate, approximating post-tax spend.
var DefaultVATMultiplier = decimal.NewFromFloat(1.1)

var hundred = decimal.NewFromInt(100)

type ratioSet struct {
	marginRate decimal.Decimal
	costRate   decimal.Decimal
	adCostRate decimal.Decimal
	roas       decimal.Decimal
}

// safeRate returns num/den*100, or zero unless den is strictly positive.
// Every ratio in the engine goes through this one guard; the strict
// inequality avoids sign flips when a denominator goes negative.
func safeRate(num, den decimal.Decimal) decimal.Decimal {
	if !den.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred)
}

// ratiosOf derives the four percentage metrics from a bucket's sums.
// Values are unrounded; rounding happens once at the dto boundary.
func ratiosOf(b *bucket, vat decimal.Decimal) ratioSet {
	return ratioSet{
		marginRate: safeRate(b.totalProfit, b.totalSales),
		costRate:   safeRate(b.totalSales.Sub(b.totalCost), b.totalSales),
		adCostRate: safeRate(b.totalAdCost.Mul(vat), b.totalSales),
		roas:       safeRate(b.totalSales, b.totalAdCost),
	}
}
