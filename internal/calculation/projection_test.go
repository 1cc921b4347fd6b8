package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// referenceProfile is the worked example used throughout the engine tests.
func referenceProfile() domain.ProfileInput {
	return domain.ProfileInput{
		CurrentAge:            30,
		RetirementAge:         65,
		LifeExpectancy:        90,
		CurrentIncome:         dec("60000"),
		SalaryIncreasePct:     dec("3"),
		CurrentSavings:        dec("10000"),
		AnnualContribPct:      dec("10"),
		EmployerMatchPct:      dec("50"),
		EmployerMatchLimitPct: dec("6"),
		ExpectedReturnPct:     dec("7"),
	}
}

func TestCalculateAnnualContribution(t *testing.T) {
	tests := []struct {
		name             string
		income           decimal.Decimal
		contribPct       decimal.Decimal
		matchPct         decimal.Decimal
		limitPct         decimal.Decimal
		expectedEmployee decimal.Decimal
		expectedEmployer decimal.Decimal
	}{
		{
			name:             "Match capped by limit",
			income:           dec("60000"),
			contribPct:       dec("10"),
			matchPct:         dec("50"),
			limitPct:         dec("6"),
			expectedEmployee: dec("6000"),
			expectedEmployer: dec("1800"), // min(6000, 3600) * 0.5
		},
		{
			name:             "Contribution below limit",
			income:           dec("80000"),
			contribPct:       dec("4"),
			matchPct:         dec("100"),
			limitPct:         dec("6"),
			expectedEmployee: dec("3200"),
			expectedEmployer: dec("3200"), // min(3200, 4800) * 1.0
		},
		{
			name:             "No contribution means no match",
			income:           dec("50000"),
			contribPct:       dec("0"),
			matchPct:         dec("100"),
			limitPct:         dec("5"),
			expectedEmployee: decimal.Zero,
			expectedEmployer: decimal.Zero,
		},
		{
			name:             "Zero income",
			income:           decimal.Zero,
			contribPct:       dec("15"),
			matchPct:         dec("50"),
			limitPct:         dec("6"),
			expectedEmployee: decimal.Zero,
			expectedEmployer: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CalculateAnnualContribution(tt.income, tt.contribPct, tt.matchPct, tt.limitPct)
			assert.True(t, c.Employee.Equal(tt.expectedEmployee), "employee: expected %s, got %s", tt.expectedEmployee, c.Employee)
			assert.True(t, c.Employer.Equal(tt.expectedEmployer), "employer: expected %s, got %s", tt.expectedEmployer, c.Employer)
			assert.True(t, c.Total().Equal(tt.expectedEmployee.Add(tt.expectedEmployer)))
		})
	}
}

func TestAccumulate_FirstYears(t *testing.T) {
	ce := NewEngine()
	acc, err := ce.Accumulate(referenceProfile())
	require.NoError(t, err)
	require.Len(t, acc.Balances, 35)

	// (10000 + 6000 + 1800) * 1.07
	assert.True(t, acc.Balances[0].Equal(dec("19046")), "year 1: got %s", acc.Balances[0])
	// income 61800: (19046 + 6180 + 1854) * 1.07
	assert.True(t, acc.Balances[1].Equal(dec("28975.6")), "year 2: got %s", acc.Balances[1])
	assert.True(t, acc.FinalBalance.Equal(acc.Balances[34]))
}

func TestAccumulate_EachStepFollowsFormula(t *testing.T) {
	p := referenceProfile()
	acc, err := NewEngine().Accumulate(p)
	require.NoError(t, err)

	income := p.CurrentIncome
	prev := p.CurrentSavings
	for i, got := range acc.Balances {
		employee := income.Mul(dec("0.10"))
		employer := decimal.Min(employee, income.Mul(dec("0.06"))).Mul(dec("0.5"))
		want := prev.Add(employee).Add(employer).Mul(dec("1.07"))
		assert.True(t, got.Equal(want), "year %d: expected %s, got %s", i+1, want, got)
		prev = got
		income = income.Mul(dec("1.03"))
	}
}

func TestAccumulate_LengthMatchesYears(t *testing.T) {
	for _, years := range []int{0, 1, 5, 40} {
		p := referenceProfile()
		p.RetirementAge = p.CurrentAge + years
		p.LifeExpectancy = p.RetirementAge + 10
		acc, err := NewEngine().Accumulate(p)
		require.NoError(t, err)
		assert.Len(t, acc.Balances, years)
	}
}

func TestAccumulate_RetiringNow(t *testing.T) {
	p := referenceProfile()
	p.RetirementAge = p.CurrentAge

	acc, err := NewEngine().Accumulate(p)
	require.NoError(t, err)
	assert.Empty(t, acc.Balances)
	assert.True(t, acc.FinalBalance.Equal(p.CurrentSavings))
}

func TestAccumulate_RejectsInvertedHorizon(t *testing.T) {
	p := referenceProfile()
	p.RetirementAge = p.CurrentAge - 1

	_, err := NewEngine().Accumulate(p)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestAccumulate_ZeroReturnIsSimpleSum(t *testing.T) {
	p := referenceProfile()
	p.ExpectedReturnPct = decimal.Zero
	p.SalaryIncreasePct = decimal.Zero
	p.RetirementAge = 40

	acc, err := NewEngine().Accumulate(p)
	require.NoError(t, err)
	// 10000 + 10 * (6000 + 1800)
	assert.True(t, acc.FinalBalance.Equal(dec("88000")), "got %s", acc.FinalBalance)
	assert.True(t, acc.FinalIncome.Equal(dec("60000")))
}

func TestEngine_AccumulateUsesLogger(t *testing.T) {
	rec := &recordingLogger{}
	ce := NewEngine()
	ce.SetLogger(rec)

	p := referenceProfile()
	p.RetirementAge = 33
	_, err := ce.Accumulate(p)
	require.NoError(t, err)
	assert.Len(t, rec.debug, 4) // initial savings + 3 years

	ce.SetLogger(nil)
	_, isNop := ce.Logger.(NopLogger)
	assert.True(t, isNop)

	_, err = ce.Project(context.Background(), referenceProfile())
	require.NoError(t, err)
}

type recordingLogger struct {
	debug []string
	info  []string
	warn  []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.debug = append(r.debug, format) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.info = append(r.info, format) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.warn = append(r.warn, format) }
func (r *recordingLogger) Errorf(format string, args ...any) {}
