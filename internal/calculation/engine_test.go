package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ReferenceScenario(t *testing.T) {
	result, err := NewEngine().Project(context.Background(), referenceProfile())
	require.NoError(t, err)

	assert.Equal(t, "1747322.14", result.FinalBalanceAtRetirement.StringFixed(2))
	assert.Equal(t, "149938.62", result.AnnualWithdrawal.StringFixed(2))
	require.Len(t, result.SavingsOverTime, 60)
	assert.Equal(t, 35, result.AccumulationYears)
	assert.Equal(t, 25, result.RetirementYears)
	assert.True(t, result.SavingsOverTime[0].Equal(dec("19046")))
	assert.True(t, result.SavingsOverTime[1].Equal(dec("28975.6")))
	assert.Equal(t, "36982.19", result.SavingsOverTime[55].StringFixed(2))
	assert.True(t, result.SavingsOverTime[34].Equal(result.FinalBalanceAtRetirement))
	assert.Equal(t, []string{RecOnTrack, RecDiversify}, result.Recommendations)
	assert.False(t, result.MarginalTaxRate.Valid)
	assert.False(t, result.RequiredContribPct.Valid)

	// The level payment is sized for end-of-year draws but is taken before
	// growth, so the balance is exhausted three years early.
	assert.Equal(t, 87, result.DepletionAge(referenceProfile()))
	for i, bal := range result.SavingsOverTime[56:] {
		assert.True(t, bal.IsZero(), "age %d balance %s", 87+i, bal)
	}
	withdrawals := result.Withdrawals()
	require.Len(t, withdrawals, 25)
	assert.True(t, withdrawals[20].Equal(result.AnnualWithdrawal))
	assert.True(t, withdrawals[21].Equal(result.SavingsOverTime[55]))
	assert.True(t, withdrawals[22].IsZero())
	assert.Equal(t, "3185693.14", result.TotalWithdrawn().StringFixed(2))
}

func TestProject_Idempotent(t *testing.T) {
	ce := NewEngineWithTaxTable(DefaultTaxTable())
	first, err := ce.Project(context.Background(), referenceProfile())
	require.NoError(t, err)
	second, err := ce.Project(context.Background(), referenceProfile())
	require.NoError(t, err)

	require.Len(t, second.SavingsOverTime, len(first.SavingsOverTime))
	for i := range first.SavingsOverTime {
		assert.True(t, first.SavingsOverTime[i].Equal(second.SavingsOverTime[i]), "year %d differs", i+1)
	}
	assert.True(t, first.AnnualWithdrawal.Equal(second.AnnualWithdrawal))
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestProject_WithTaxTable(t *testing.T) {
	result, err := NewEngineWithTaxTable(DefaultTaxTable()).Project(context.Background(), referenceProfile())
	require.NoError(t, err)
	require.True(t, result.MarginalTaxRate.Valid)
	assert.True(t, result.MarginalTaxRate.Decimal.Equal(decimal.NewFromInt(22)))
	assert.True(t, result.EstimatedIncomeTax.Decimal.Equal(dec("13200")))

	result, err = NewEngineWithTaxTable(TaxTable{{Min: decimal.Zero, Rate: dec("12.5")}}).Project(context.Background(), referenceProfile())
	require.NoError(t, err)
	require.True(t, result.EstimatedIncomeTax.Valid)
	assert.Equal(t, "7500.00", result.EstimatedIncomeTax.Decimal.StringFixed(2))
}

func TestProject_TaxGapIsNotFatal(t *testing.T) {
	rec := &recordingLogger{}
	ce := NewEngineWithTaxTable(TaxTable{
		{Min: dec("100000"), Rate: dec("30")},
	})
	ce.SetLogger(rec)

	result, err := ce.Project(context.Background(), referenceProfile())
	require.NoError(t, err)
	assert.False(t, result.MarginalTaxRate.Valid)
	assert.Len(t, rec.warn, 1)
}

func TestProject_RetiringNow(t *testing.T) {
	p := referenceProfile()
	p.RetirementAge = p.CurrentAge
	p.LifeExpectancy = p.CurrentAge + 20

	result, err := NewEngine().Project(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, result.FinalBalanceAtRetirement.Equal(p.CurrentSavings))
	assert.Equal(t, 0, result.AccumulationYears)
	assert.Len(t, result.SavingsOverTime, 20)
	assert.True(t, result.AnnualWithdrawal.IsPositive())
}

func TestProject_NoRetirementYears(t *testing.T) {
	p := referenceProfile()
	p.LifeExpectancy = p.RetirementAge

	result, err := NewEngine().Project(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, result.SavingsOverTime, 35)
	assert.True(t, result.AnnualWithdrawal.IsZero())
	assert.True(t, result.EndingBalance().Equal(result.FinalBalanceAtRetirement))
}

func TestProject_InvalidProfile(t *testing.T) {
	p := referenceProfile()
	p.RetirementAge = 25

	_, err := NewEngine().Project(context.Background(), p)
	require.Error(t, err)
	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.NotNil(t, verrs.FieldError(domain.FieldRetirementAge))
}

func TestProject_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Project(ctx, referenceProfile())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProject_SolveShortfall(t *testing.T) {
	p := referenceProfile()
	p.AnnualContribPct = dec("2")
	p.EmployerMatchPct = decimal.Zero

	ce := NewEngine()
	ce.SolveShortfall = true
	result, err := ce.Project(context.Background(), p)
	require.NoError(t, err)
	require.True(t, result.FinalBalanceAtRetirement.LessThan(RecommendationThreshold))
	require.True(t, result.RequiredContribPct.Valid)
	assert.True(t, result.RequiredContribPct.Decimal.GreaterThan(dec("2")))
	assert.Equal(t, []string{RecIncreaseContributions, RecIndexFunds}, result.Recommendations)
}

func TestBuildReport(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	report, err := NewEngine().BuildReport(context.Background(), referenceProfile())
	require.NoError(t, err)
	assert.Equal(t, fixed, report.GeneratedAt)
	require.Len(t, report.Series, 60)
	assert.Equal(t, 31, report.Series[0].Age)
	assert.Equal(t, domain.PhaseAccumulation, report.Series[34].Phase)
	assert.Equal(t, 65, report.Series[34].Age)
	assert.Equal(t, domain.PhaseRetirement, report.Series[35].Phase)
	assert.Equal(t, 90, report.Series[59].Age)
}
