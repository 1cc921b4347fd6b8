package output

import (
	"strconv"

	pdec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as grouped USD currency with 2 decimals, e.g. $1,234,567.89.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return pdec.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a whole-number percentage input without padding, e.g. 7 -> "7%".
func FormatRate(pct decimal.Decimal) string { return pct.String() + "%" }

func intToString(i int) string { return strconv.Itoa(i) }
