package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// RequiredContribution searches for the smallest annual contribution
// percentage (to the nearest 0.01%) whose balance at retirement reaches target.
// All other profile assumptions are held fixed.
func (ce *Engine) RequiredContribution(ctx context.Context, p domain.ProfileInput, target decimal.Decimal) (decimal.Decimal, error) {
	balanceAt := func(pct decimal.Decimal) (decimal.Decimal, error) {
		trial := p
		trial.AnnualContribPct = pct
		acc, err := ce.quietAccumulate(trial)
		if err != nil {
			return decimal.Zero, err
		}
		return acc.FinalBalance, nil
	}

	// Search over whole hundredths of a percent so the answer is exact.
	hundredths := decimal.NewFromInt(100)
	minRate, maxRate := int64(0), int64(100*100)
	maxIterations := 50

	floor, err := balanceAt(decimal.Zero)
	if err != nil {
		return decimal.Zero, err
	}
	if floor.GreaterThanOrEqual(target) {
		return decimal.Zero, nil
	}
	ceiling, err := balanceAt(decimal.NewFromInt(100))
	if err != nil {
		return decimal.Zero, err
	}
	if ceiling.LessThan(target) {
		return decimal.Zero, fmt.Errorf("%w: %s at 100%% contribution", ErrTargetUnreachable, ceiling.StringFixed(2))
	}

	// Invariant: minRate falls short of target, maxRate reaches it.
	for i := 0; i < maxIterations && maxRate-minRate > 1; i++ {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, err
		}
		testRate := (minRate + maxRate) / 2
		balance, err := balanceAt(decimal.NewFromInt(testRate).Div(hundredths))
		if err != nil {
			return decimal.Zero, err
		}
		if balance.LessThan(target) {
			minRate = testRate
		} else {
			maxRate = testRate
		}
	}

	return decimal.NewFromInt(maxRate).Div(hundredths), nil
}

// quietAccumulate runs the accumulation without per-year debug output.
func (ce *Engine) quietAccumulate(p domain.ProfileInput) (*AccumulationResult, error) {
	silent := &Engine{Logger: NopLogger{}}
	return silent.Accumulate(p)
}
