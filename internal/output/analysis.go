package output

import (
	calc "github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Analysis holds figures derived from a report for display.
type Analysis struct {
	PeakBalance      decimal.Decimal
	PeakAge          int
	DepletionAge     int             // 0 when savings last through life expectancy
	TotalWithdrawals decimal.Decimal // amounts actually drawn, capped by the remaining balance
	OnTrack          bool
	Shortfall        decimal.Decimal // distance below the recommendation threshold, zero when on track
}

// AnalyzeProjection derives the summary figures shown alongside a projection.
// Extracted from the formatters for testability.
func AnalyzeProjection(report *domain.ProjectionReport) Analysis {
	r := report.Result
	a := Analysis{
		PeakBalance:      report.Profile.CurrentSavings,
		PeakAge:          report.Profile.CurrentAge,
		DepletionAge:     r.DepletionAge(report.Profile),
		TotalWithdrawals: r.TotalWithdrawn(),
		OnTrack:          !r.FinalBalanceAtRetirement.LessThan(calc.RecommendationThreshold),
		Shortfall:        decimal.Zero,
	}
	for _, pt := range report.Series {
		if pt.Balance.GreaterThan(a.PeakBalance) {
			a.PeakBalance = pt.Balance
			a.PeakAge = pt.Age
		}
	}
	if !a.OnTrack {
		a.Shortfall = calc.RecommendationThreshold.Sub(r.FinalBalanceAtRetirement)
	}
	return a
}
