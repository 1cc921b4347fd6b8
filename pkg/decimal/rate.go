package decimal

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Rate converts a whole-number percentage (7 for 7%) to a fraction (0.07).
func Rate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// GrowthFactor returns 1 + pct/100.
func GrowthFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(Rate(pct))
}

// Percent converts a fraction back to a whole-number percentage.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// PowInt raises base to a non-negative integer power exactly, by repeated squaring.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}
