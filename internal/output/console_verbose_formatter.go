package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleVerboseFormatter renders a plain-text report with every simulated year.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Profile
	r := report.Result
	a := AnalyzeProjection(report)

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED RETIREMENT SAVINGS PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	if stamp := generatedStamp(report.GeneratedAt); stamp != "" {
		fmt.Fprintf(&buf, "Generated: %s\n", stamp)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, line := range GenerateAssumptions(p) {
		fmt.Fprintf(&buf, "• %s\n", line)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Projected savings at age %d: %s\n", p.RetirementAge, FormatCurrency(r.FinalBalanceAtRetirement))
	fmt.Fprintf(&buf, "Annual withdrawal amount over %d years of retirement: %s\n", p.YearsInRetirement(), FormatCurrency(r.AnnualWithdrawal))
	fmt.Fprintf(&buf, "Total withdrawn over retirement: %s\n", FormatCurrency(a.TotalWithdrawals))
	if a.DepletionAge > 0 && a.DepletionAge < p.LifeExpectancy {
		fmt.Fprintln(&buf, depletionNote(a.DepletionAge))
	}
	fmt.Fprintf(&buf, "Peak balance: %s at age %d\n", FormatCurrency(a.PeakBalance), a.PeakAge)
	if a.OnTrack {
		fmt.Fprintln(&buf, "Status: on track")
	} else {
		fmt.Fprintf(&buf, "Status: %s short of %s\n", FormatCurrency(a.Shortfall), FormatCurrency(a.Shortfall.Add(r.FinalBalanceAtRetirement)))
	}
	if r.MarginalTaxRate.Valid {
		fmt.Fprintf(&buf, "Marginal tax bracket: %s\n", FormatRate(r.MarginalTaxRate.Decimal))
	}
	if r.RequiredContribPct.Valid {
		fmt.Fprintf(&buf, "Required contribution: %s\n", FormatPercentage(r.RequiredContribPct.Decimal))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&buf, "- %s\n", rec)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "YEAR-BY-YEAR BALANCES")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "%-6s %-14s %16s %20s\n", "Age", "Phase", "Withdrawal", "Balance")
	fmt.Fprintln(&buf, strings.Repeat("-", 59))
	withdrawals := r.Withdrawals()
	for i, pt := range report.Series {
		withdrawal := "-"
		if j := i - r.AccumulationYears; j >= 0 && j < len(withdrawals) {
			withdrawal = FormatCurrency(withdrawals[j])
		}
		fmt.Fprintf(&buf, "%-6d %-14s %16s %20s\n", pt.Age, pt.Phase, withdrawal, FormatCurrency(pt.Balance))
	}
	return buf.Bytes(), nil
}
