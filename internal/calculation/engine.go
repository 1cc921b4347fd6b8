package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
	pdec "github.com/rpgo/savings-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Engine orchestrates the savings projection
type Engine struct {
	// TaxTable is optional; when set, results carry the marginal rate for the current income.
	TaxTable TaxTable
	// SolveShortfall asks Project to compute the contribution needed to reach
	// RecommendationThreshold when the projection falls short.
	SolveShortfall bool
	Logger         Logger
}

// NewEngine creates a projection engine with no tax table and a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// NewEngineWithTaxTable creates a projection engine that also reports the marginal tax bracket
func NewEngineWithTaxTable(table TaxTable) *Engine {
	ce := NewEngine()
	ce.TaxTable = table
	return ce
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (ce *Engine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Project runs the accumulation and decumulation simulation for a profile.
// The same profile always yields the same result.
func (ce *Engine) Project(ctx context.Context, p domain.ProfileInput) (*domain.ProjectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if ce.Logger == nil {
		ce.Logger = NopLogger{}
	}

	acc, err := ce.Accumulate(p)
	if err != nil {
		return nil, err
	}
	dec, err := ce.Decumulate(acc.FinalBalance, p)
	if err != nil {
		return nil, err
	}

	savings := make([]decimal.Decimal, 0, len(acc.Balances)+len(dec.Balances))
	savings = append(savings, acc.Balances...)
	savings = append(savings, dec.Balances...)

	result := &domain.ProjectionResult{
		FinalBalanceAtRetirement: acc.FinalBalance,
		SavingsOverTime:          savings,
		AnnualWithdrawal:         dec.AnnualWithdrawal,
		Recommendations:          ProvideRecommendations(acc.FinalBalance),
		AccumulationYears:        len(acc.Balances),
		RetirementYears:          len(dec.Balances),
	}

	if len(ce.TaxTable) > 0 {
		rate, err := ce.TaxTable.Lookup(p.CurrentIncome)
		if err != nil {
			// Tax information is informational; a gap in the table must not fail the projection.
			ce.Logger.Warnf("Tax bracket lookup failed: %v", err)
		} else {
			result.MarginalTaxRate = decimal.NewNullDecimal(rate)
			result.EstimatedIncomeTax = decimal.NewNullDecimal(p.CurrentIncome.Mul(pdec.Rate(rate)))
		}
	}

	if ce.SolveShortfall && acc.FinalBalance.LessThan(RecommendationThreshold) {
		required, err := ce.RequiredContribution(ctx, p, RecommendationThreshold)
		switch {
		case err == nil:
			result.RequiredContribPct = decimal.NewNullDecimal(required)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			ce.Logger.Infof("No contribution level reaches %s: %v", RecommendationThreshold.StringFixed(2), err)
		}
	}

	ce.Logger.Infof("Projected savings at age %d: %s; annual withdrawal %s",
		p.RetirementAge, acc.FinalBalance.StringFixed(2), dec.AnnualWithdrawal.StringFixed(2))
	return result, nil
}

// BuildReport runs a projection and packages it with the plottable age series.
func (ce *Engine) BuildReport(ctx context.Context, p domain.ProfileInput) (*domain.ProjectionReport, error) {
	result, err := ce.Project(ctx, p)
	if err != nil {
		return nil, err
	}
	return &domain.ProjectionReport{
		Profile:     p,
		Result:      result,
		Series:      domain.BuildSeries(p, result),
		GeneratedAt: nowFunc(),
	}, nil
}
