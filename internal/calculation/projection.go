package calculation

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	pdec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Contribution is one year's money going into the retirement account.
type Contribution struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// Total returns the employee and employer amounts combined.
func (c Contribution) Total() decimal.Decimal {
	return c.Employee.Add(c.Employer)
}

// CalculateAnnualContribution computes the employee contribution and the
// employer match. The match applies to contributions up to limitPct of income.
func CalculateAnnualContribution(income, contribPct, matchPct, limitPct decimal.Decimal) Contribution {
	employee := income.Mul(pdec.Rate(contribPct))
	matchable := decimal.Min(employee, income.Mul(pdec.Rate(limitPct)))
	return Contribution{
		Employee: employee,
		Employer: matchable.Mul(pdec.Rate(matchPct)),
	}
}

// AccumulationResult is the state of the account on the retirement date.
type AccumulationResult struct {
	FinalBalance decimal.Decimal
	FinalIncome  decimal.Decimal
	Balances     []decimal.Decimal // end-of-year balance for each working year
}

// Accumulate simulates the working years. Contributions are added before the
// year's growth is applied and raises take effect the following year.
func (ce *Engine) Accumulate(p domain.ProfileInput) (*AccumulationResult, error) {
	years := p.YearsToRetirement()
	if years < 0 {
		return nil, fmt.Errorf("%w: retirement age %d is before current age %d", ErrInvalidHorizon, p.RetirementAge, p.CurrentAge)
	}

	growth := pdec.GrowthFactor(p.ExpectedReturnPct)
	raise := pdec.GrowthFactor(p.SalaryIncreasePct)
	income := p.CurrentIncome
	savings := p.CurrentSavings
	balances := make([]decimal.Decimal, 0, years)

	ce.Logger.Debugf("Initial savings: %s", savings.StringFixed(2))
	for year := 1; year <= years; year++ {
		contrib := CalculateAnnualContribution(income, p.AnnualContribPct, p.EmployerMatchPct, p.EmployerMatchLimitPct)
		savings = savings.Add(contrib.Total()).Mul(growth)
		balances = append(balances, savings)
		ce.Logger.Debugf("Year %d (age %d): income %s, employee %s, employer %s, savings %s",
			year, p.CurrentAge+year, income.StringFixed(2), contrib.Employee.StringFixed(2),
			contrib.Employer.StringFixed(2), savings.StringFixed(2))
		income = income.Mul(raise)
	}

	return &AccumulationResult{
		FinalBalance: savings,
		FinalIncome:  income,
		Balances:     balances,
	}, nil
}
