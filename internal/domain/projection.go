package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionResult is the outcome of one accumulation + decumulation simulation.
type ProjectionResult struct {
	FinalBalanceAtRetirement decimal.Decimal   `json:"final_balance_at_retirement"`
	SavingsOverTime          []decimal.Decimal `json:"savings_over_time"` // accumulation years, then decumulation years
	AnnualWithdrawal         decimal.Decimal   `json:"annual_withdrawal"`
	Recommendations          []string          `json:"recommendations"`

	AccumulationYears int `json:"accumulation_years"`
	RetirementYears   int `json:"retirement_years"`

	// Informational only; not part of the savings formula.
	MarginalTaxRate    decimal.NullDecimal `json:"marginal_tax_rate"`
	EstimatedIncomeTax decimal.NullDecimal `json:"estimated_income_tax"`

	// Contribution percentage needed to reach the recommendation threshold,
	// set only when the projection falls short and the target is reachable.
	RequiredContribPct decimal.NullDecimal `json:"required_contrib_pct"`
}

// AccumulationCurve returns the balances recorded before retirement.
func (r *ProjectionResult) AccumulationCurve() []decimal.Decimal {
	return r.SavingsOverTime[:r.AccumulationYears]
}

// DepletionCurve returns the balances recorded after retirement.
func (r *ProjectionResult) DepletionCurve() []decimal.Decimal {
	return r.SavingsOverTime[r.AccumulationYears:]
}

// EndingBalance returns the last simulated balance, or the final balance at
// retirement when no retirement years were simulated.
func (r *ProjectionResult) EndingBalance() decimal.Decimal {
	if len(r.SavingsOverTime) == 0 || r.RetirementYears == 0 {
		return r.FinalBalanceAtRetirement
	}
	return r.SavingsOverTime[len(r.SavingsOverTime)-1]
}

// DepletionAge returns the first age at which the balance reached zero during
// retirement, or 0 if savings last through life expectancy.
func (r *ProjectionResult) DepletionAge(p ProfileInput) int {
	for i, bal := range r.DepletionCurve() {
		if bal.IsZero() {
			return p.RetirementAge + i + 1
		}
	}
	return 0
}

// Withdrawals returns the amount drawn in each retirement year: the level
// payment, or whatever was left once the balance fell below it.
func (r *ProjectionResult) Withdrawals() []decimal.Decimal {
	curve := r.DepletionCurve()
	out := make([]decimal.Decimal, 0, len(curve))
	start := r.FinalBalanceAtRetirement
	for _, end := range curve {
		out = append(out, decimal.Min(r.AnnualWithdrawal, start))
		start = end
	}
	return out
}

// TotalWithdrawn sums the amounts actually drawn over retirement.
func (r *ProjectionResult) TotalWithdrawn() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.Withdrawals() {
		total = total.Add(w)
	}
	return total
}

// Phase labels a simulated year.
type Phase string

const (
	PhaseAccumulation Phase = "accumulation"
	PhaseRetirement   Phase = "retirement"
)

// AgePoint is one plottable point of the savings curve.
type AgePoint struct {
	Age     int             `json:"age"`
	Balance decimal.Decimal `json:"balance"`
	Phase   Phase           `json:"phase"`
}

// ProjectionReport is everything the result surface needs to render a run.
type ProjectionReport struct {
	Profile     ProfileInput      `json:"profile"`
	Result      *ProjectionResult `json:"result"`
	Series      []AgePoint        `json:"series"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// BuildSeries pairs each simulated balance with the age reached at the end of that year.
func BuildSeries(p ProfileInput, r *ProjectionResult) []AgePoint {
	series := make([]AgePoint, 0, len(r.SavingsOverTime))
	for i, bal := range r.SavingsOverTime {
		phase := PhaseAccumulation
		if i >= r.AccumulationYears {
			phase = PhaseRetirement
		}
		series = append(series, AgePoint{Age: p.CurrentAge + i + 1, Balance: bal, Phase: phase})
	}
	return series
}

// HistoryEntry is one remembered profile in the recent-input history.
type HistoryEntry struct {
	ID      string       `json:"id"`
	SavedAt time.Time    `json:"saved_at"`
	Profile ProfileInput `json:"profile"`
}
