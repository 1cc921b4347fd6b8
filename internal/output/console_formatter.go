package output

import (
	"bytes"
	"fmt"

	calc "github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
)

// ConsoleFormatter renders a styled terminal summary with a savings chart.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	p := report.Profile
	r := report.Result

	fmt.Fprintln(&buf, RenderTitle("RETIREMENT SAVINGS PROJECTION"))
	fmt.Fprintln(&buf)

	buf.WriteString(RenderTable(Table{
		Title:   "Your inputs",
		Headers: []string{"Input", "Value"},
		Rows:    profileRows(p),
	}))
	fmt.Fprintln(&buf)

	writeHeadline(&buf, report)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headerStyle.Render("Recommendations:"))
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}

	if len(report.Series) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headerStyle.Render("Savings over time"))
		buf.WriteString(SeriesChart(report.Series, 72, 10))
	}
	return buf.Bytes(), nil
}

// writeHeadline prints the projected balance and withdrawal lines shared by the console formats.
func writeHeadline(buf *bytes.Buffer, report *domain.ProjectionReport) {
	p := report.Profile
	r := report.Result
	fmt.Fprintf(buf, "Projected savings at age %d: %s\n", p.RetirementAge, moneyStyle.Render(FormatCurrency(r.FinalBalanceAtRetirement)))
	fmt.Fprintf(buf, "Annual withdrawal amount over %d years of retirement: %s\n", p.YearsInRetirement(), moneyStyle.Render(FormatCurrency(r.AnnualWithdrawal)))

	if r.MarginalTaxRate.Valid {
		fmt.Fprintf(buf, "Marginal tax bracket on current income: %s (about %s if applied to all income)\n",
			FormatRate(r.MarginalTaxRate.Decimal), FormatCurrency(r.EstimatedIncomeTax.Decimal))
	}
	if r.RequiredContribPct.Valid {
		fmt.Fprintf(buf, "%s\n", warnStyle.Render(fmt.Sprintf("Contributing %s of income would reach %s by age %d.",
			FormatPercentage(r.RequiredContribPct.Decimal), FormatCurrency(calc.RecommendationThreshold), p.RetirementAge)))
	}
	if age := r.DepletionAge(p); age > 0 && age < p.LifeExpectancy {
		fmt.Fprintf(buf, "%s\n", warnStyle.Render(depletionNote(age)))
	}
}

// depletionNote is shown when savings reach zero before life expectancy.
func depletionNote(age int) string {
	return fmt.Sprintf("Withdrawals come out before each year of growth, so savings run out at age %d.", age)
}

func profileRows(p domain.ProfileInput) [][]string {
	return [][]string{
		{"Current age", intToString(p.CurrentAge)},
		{"Retirement age", intToString(p.RetirementAge)},
		{"Life expectancy", intToString(p.LifeExpectancy)},
		{"Current income", FormatCurrency(p.CurrentIncome)},
		{"Annual salary increase", FormatRate(p.SalaryIncreasePct)},
		{"Current savings", FormatCurrency(p.CurrentSavings)},
		{"Annual contribution", FormatRate(p.AnnualContribPct)},
		{"Employer match", FormatRate(p.EmployerMatchPct)},
		{"Employer match limit", FormatRate(p.EmployerMatchLimitPct)},
		{"Expected return", FormatRate(p.ExpectedReturnPct)},
	}
}
