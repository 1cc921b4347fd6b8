package calculation

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	pdec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// AnnuityFactor returns the present value of a payment of 1 per year for
// years periods at rate: (1 - (1+rate)^-years) / rate. A zero rate yields years.
func AnnuityFactor(years int, rate decimal.Decimal) (decimal.Decimal, error) {
	if years <= 0 {
		return decimal.Zero, ErrNonPositiveYears
	}
	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, ErrInvalidRate
	}
	if rate.IsZero() {
		return decimal.NewFromInt(int64(years)), nil
	}
	compound := pdec.PowInt(one.Add(rate), years)
	return compound.Sub(one).Div(rate.Mul(compound)), nil
}

// CalculateAnnualWithdrawal returns the level annual payment that exhausts
// totalSavings over years periods when the remainder grows at rate.
func CalculateAnnualWithdrawal(totalSavings decimal.Decimal, years int, rate decimal.Decimal) (decimal.Decimal, error) {
	if years <= 0 {
		return decimal.Zero, ErrNonPositiveYears
	}
	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, ErrInvalidRate
	}
	if rate.IsZero() {
		return totalSavings.Div(decimal.NewFromInt(int64(years))), nil
	}
	// Equivalent to totalSavings / AnnuityFactor(years, rate).
	compound := pdec.PowInt(one.Add(rate), years)
	return totalSavings.Mul(rate).Mul(compound).Div(compound.Sub(one)), nil
}

// DecumulationResult is the drawdown of the account through life expectancy.
type DecumulationResult struct {
	AnnualWithdrawal decimal.Decimal
	Balances         []decimal.Decimal // end-of-year balance for each retirement year
}

// Decumulate withdraws the annuity payment at the start of each retirement
// year and grows the remainder. The balance is floored at zero.
func (ce *Engine) Decumulate(balance decimal.Decimal, p domain.ProfileInput) (*DecumulationResult, error) {
	years := p.YearsInRetirement()
	if years < 0 {
		return nil, fmt.Errorf("%w: life expectancy %d is before retirement age %d", ErrInvalidHorizon, p.LifeExpectancy, p.RetirementAge)
	}
	if years == 0 {
		ce.Logger.Infof("No retirement years to simulate; withdrawal set to zero")
		return &DecumulationResult{AnnualWithdrawal: decimal.Zero, Balances: []decimal.Decimal{}}, nil
	}

	rate := pdec.Rate(p.ExpectedReturnPct)
	withdrawal, err := CalculateAnnualWithdrawal(balance, years, rate)
	if err != nil {
		return nil, fmt.Errorf("annual withdrawal: %w", err)
	}
	ce.Logger.Debugf("Annual withdrawal amount: %s over %d years", withdrawal.StringFixed(2), years)

	growth := one.Add(rate)
	balances := make([]decimal.Decimal, 0, years)
	for year := 1; year <= years; year++ {
		balance = pdec.NewMoneyFromDecimal(balance.Sub(withdrawal).Mul(growth)).ClampZero().Decimal
		balances = append(balances, balance)
		ce.Logger.Debugf("Retirement year %d (age %d): savings %s", year, p.RetirementAge+year, balance.StringFixed(2))
	}

	return &DecumulationResult{AnnualWithdrawal: withdrawal, Balances: balances}, nil
}
