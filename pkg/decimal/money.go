package decimal

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// ClampZero returns the amount, or zero if it is negative
func (m Money) ClampZero() Money {
	if m.Decimal.IsNegative() {
		return Zero()
	}
	return m
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the string representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the amount as grouped US currency, e.g. $1,234,567.89
func (m Money) Format() string {
	fixed := m.Decimal.Round(2)
	sign := ""
	if fixed.IsNegative() {
		sign = "-"
		fixed = fixed.Abs()
	}
	whole := fixed.Truncate(0)
	cents := strings.TrimPrefix(fixed.Sub(whole).StringFixed(2), "0")
	return sign + "$" + humanize.BigComma(whole.BigInt()) + cents
}
