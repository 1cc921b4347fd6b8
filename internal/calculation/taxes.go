package calculation

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	pdec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TaxTable is an ordered list of marginal-rate bands covering [0, +inf).
type TaxTable []domain.TaxBracket

func band(minVal, maxVal, rate int64) domain.TaxBracket {
	b := domain.TaxBracket{Min: decimal.NewFromInt(minVal), Rate: decimal.NewFromInt(rate)}
	if maxVal >= 0 {
		b.Max = decimal.NewNullDecimal(decimal.NewFromInt(maxVal))
	}
	return b
}

// DefaultTaxTable returns the built-in single-filer table used when no table file is configured.
func DefaultTaxTable() TaxTable {
	return TaxTable{
		band(0, 9950, 10),
		band(9951, 40525, 12),
		band(40526, 86375, 22),
		band(86376, 164925, 24),
		band(164926, 209425, 32),
		band(209426, 523600, 35),
		band(523601, -1, 37),
	}
}

// Lookup returns the rate of the first band containing income.
func (t TaxTable) Lookup(income decimal.Decimal) (decimal.Decimal, error) {
	for _, b := range t {
		if b.Contains(income) {
			return b.Rate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrNoTaxBracket, income.StringFixed(2))
}

// EstimateTax applies the marginal rate to the whole income, as a rough upper bound.
func (t TaxTable) EstimateTax(income decimal.Decimal) (decimal.Decimal, error) {
	rate, err := t.Lookup(income)
	if err != nil {
		return decimal.Zero, err
	}
	return income.Mul(pdec.Rate(rate)), nil
}

// Validate checks that bands ascend without overlaps or gaps and that only the last is unbounded.
func (t TaxTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidTaxTable)
	}
	for i, b := range t {
		if b.Min.IsNegative() {
			return fmt.Errorf("%w: bracket %d has negative min", ErrInvalidTaxTable, i+1)
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%w: bracket %d rate %s outside 0-100", ErrInvalidTaxTable, i+1, b.Rate)
		}
		if b.Unbounded() {
			if i != len(t)-1 {
				return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidTaxTable)
			}
			continue
		}
		if b.Max.Decimal.LessThan(b.Min) {
			return fmt.Errorf("%w: bracket %d max below min", ErrInvalidTaxTable, i+1)
		}
		if i+1 < len(t) {
			next := t[i+1].Min
			if !next.GreaterThan(b.Max.Decimal) {
				return fmt.Errorf("%w: bracket %d overlaps bracket %d", ErrInvalidTaxTable, i+2, i+1)
			}
			// Edges are whole dollars, so the next band may start at most one dollar on.
			if next.GreaterThan(b.Max.Decimal.Add(one)) {
				return fmt.Errorf("%w: gap between bracket %d (max %s) and bracket %d (min %s)",
					ErrInvalidTaxTable, i+1, b.Max.Decimal, i+2, next)
			}
		}
	}
	return nil
}
