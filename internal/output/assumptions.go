package output

import (
	"fmt"

	"github.com/rpgo/savings-projector/internal/domain"
)

// DefaultAssumptions lists the modeling conventions that hold for every projection.
var DefaultAssumptions = []string{
	"Contributions are added at the start of each working year, before that year's growth",
	"Raises take effect from the second projected year",
	"Retirement withdrawals are level annual payments taken before that year's growth",
	"Balances are nominal: no inflation adjustment is applied",
}

// GenerateAssumptions creates the assumptions list from the profile's own values.
func GenerateAssumptions(p domain.ProfileInput) []string {
	out := []string{
		fmt.Sprintf("Investment return: %s annually, before and after retirement", FormatRate(p.ExpectedReturnPct)),
		fmt.Sprintf("Salary growth: %s annually from %s", FormatRate(p.SalaryIncreasePct), FormatCurrency(p.CurrentIncome)),
		fmt.Sprintf("Contribution: %s of salary for %d years", FormatRate(p.AnnualContribPct), p.YearsToRetirement()),
		fmt.Sprintf("Employer match: %s of contributions up to %s of salary", FormatRate(p.EmployerMatchPct), FormatRate(p.EmployerMatchLimitPct)),
		fmt.Sprintf("Savings drawn down over %d years, from age %d to %d", p.YearsInRetirement(), p.RetirementAge, p.LifeExpectancy),
	}
	return append(out, DefaultAssumptions...)
}
