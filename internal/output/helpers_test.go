package output

import (
	"context"
	"testing"
	"time"

	calc "github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testProfile() domain.ProfileInput {
	return domain.ProfileInput{
		CurrentAge:            30,
		RetirementAge:         65,
		LifeExpectancy:        90,
		CurrentIncome:         decimal.NewFromInt(60000),
		SalaryIncreasePct:     decimal.NewFromInt(3),
		CurrentSavings:        decimal.NewFromInt(10000),
		AnnualContribPct:      decimal.NewFromInt(10),
		EmployerMatchPct:      decimal.NewFromInt(50),
		EmployerMatchLimitPct: decimal.NewFromInt(6),
		ExpectedReturnPct:     decimal.NewFromInt(7),
	}
}

// buildTestReport runs the real engine with a fixed clock.
func buildTestReport(t *testing.T, p domain.ProfileInput, table calc.TaxTable) *domain.ProjectionReport {
	t.Helper()
	calc.SetNowFunc(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calc.SetNowFunc(time.Now) })

	eng := calc.NewEngineWithTaxTable(table)
	eng.SolveShortfall = true
	report, err := eng.BuildReport(context.Background(), p)
	require.NoError(t, err)
	return report
}
