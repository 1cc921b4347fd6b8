package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical field keys used by profile files, the interactive form and --field flags.
const (
	FieldCurrentAge            = "current_age"
	FieldRetirementAge         = "retirement_age"
	FieldLifeExpectancy        = "life_expectancy"
	FieldCurrentIncome         = "current_income"
	FieldSalaryIncreasePct     = "salary_increase_pct"
	FieldCurrentSavings        = "current_savings"
	FieldAnnualContribPct      = "annual_contrib_pct"
	FieldEmployerMatchPct      = "employer_match_pct"
	FieldEmployerMatchLimitPct = "employer_match_limit"
	FieldExpectedReturnPct     = "expected_return"
)

// ProfileFieldOrder lists the profile fields in the order they are collected.
var ProfileFieldOrder = []string{
	FieldCurrentAge,
	FieldRetirementAge,
	FieldLifeExpectancy,
	FieldCurrentIncome,
	FieldSalaryIncreasePct,
	FieldCurrentSavings,
	FieldAnnualContribPct,
	FieldEmployerMatchPct,
	FieldEmployerMatchLimitPct,
	FieldExpectedReturnPct,
}

// ProfileInput is the complete set of assumptions for a single projection run.
// Percentages are whole numbers: 7 means 7%.
type ProfileInput struct {
	CurrentAge     int `yaml:"current_age" json:"current_age" validate:"required,min=1,max=120"`
	RetirementAge  int `yaml:"retirement_age" json:"retirement_age" validate:"required,gtefield=CurrentAge,max=120"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy" validate:"required,gtefield=RetirementAge,max=130"`

	CurrentIncome  decimal.Decimal `yaml:"current_income" json:"current_income" validate:"gte=0"`
	CurrentSavings decimal.Decimal `yaml:"current_savings" json:"current_savings" validate:"gte=0"`

	SalaryIncreasePct     decimal.Decimal `yaml:"salary_increase_pct" json:"salary_increase_pct" validate:"gt=-100,lte=100"`
	AnnualContribPct      decimal.Decimal `yaml:"annual_contrib_pct" json:"annual_contrib_pct" validate:"gte=0,lte=100"`
	EmployerMatchPct      decimal.Decimal `yaml:"employer_match_pct" json:"employer_match_pct" validate:"gte=0,lte=300"`
	EmployerMatchLimitPct decimal.Decimal `yaml:"employer_match_limit" json:"employer_match_limit" validate:"gte=0,lte=100"`
	ExpectedReturnPct     decimal.Decimal `yaml:"expected_return" json:"expected_return" validate:"gt=-100,lte=100"`
}

// YearsToRetirement returns the number of accumulation years.
func (p ProfileInput) YearsToRetirement() int {
	return p.RetirementAge - p.CurrentAge
}

// YearsInRetirement returns the number of decumulation years.
func (p ProfileInput) YearsInRetirement() int {
	return p.LifeExpectancy - p.RetirementAge
}

// Validate checks ranges and the ordering of the three ages.
func (p ProfileInput) Validate() error {
	return validateStruct(p)
}

// Fields renders the profile back into its canonical textual fields.
func (p ProfileInput) Fields() map[string]string {
	return map[string]string{
		FieldCurrentAge:            strconv.Itoa(p.CurrentAge),
		FieldRetirementAge:         strconv.Itoa(p.RetirementAge),
		FieldLifeExpectancy:        strconv.Itoa(p.LifeExpectancy),
		FieldCurrentIncome:         p.CurrentIncome.String(),
		FieldSalaryIncreasePct:     p.SalaryIncreasePct.String(),
		FieldCurrentSavings:        p.CurrentSavings.String(),
		FieldAnnualContribPct:      p.AnnualContribPct.String(),
		FieldEmployerMatchPct:      p.EmployerMatchPct.String(),
		FieldEmployerMatchLimitPct: p.EmployerMatchLimitPct.String(),
		FieldExpectedReturnPct:     p.ExpectedReturnPct.String(),
	}
}

// Summary is a one-line description used when listing history entries.
func (p ProfileInput) Summary() string {
	return fmt.Sprintf("age %d→%d (to %d), income %s, savings %s, contrib %s%%, return %s%%",
		p.CurrentAge, p.RetirementAge, p.LifeExpectancy,
		p.CurrentIncome.StringFixed(2), p.CurrentSavings.StringFixed(2),
		p.AnnualContribPct.String(), p.ExpectedReturnPct.String())
}

// ProfileFromFields builds a ProfileInput from textual fields keyed by the
// canonical field names. Missing and non-numeric values are reported together.
func ProfileFromFields(fields map[string]string) (ProfileInput, error) {
	var p ProfileInput
	var errs ValidationErrors

	ints := map[string]*int{
		FieldCurrentAge:     &p.CurrentAge,
		FieldRetirementAge:  &p.RetirementAge,
		FieldLifeExpectancy: &p.LifeExpectancy,
	}
	decimals := map[string]*decimal.Decimal{
		FieldCurrentIncome:         &p.CurrentIncome,
		FieldSalaryIncreasePct:     &p.SalaryIncreasePct,
		FieldCurrentSavings:        &p.CurrentSavings,
		FieldAnnualContribPct:      &p.AnnualContribPct,
		FieldEmployerMatchPct:      &p.EmployerMatchPct,
		FieldEmployerMatchLimitPct: &p.EmployerMatchLimitPct,
		FieldExpectedReturnPct:     &p.ExpectedReturnPct,
	}

	for _, name := range ProfileFieldOrder {
		raw, ok := fields[name]
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			errs = append(errs, &ValidationError{Field: name, Message: "is required"})
			continue
		}
		if dst, isInt := ints[name]; isInt {
			v, err := ParseWholeNumber(raw)
			if err != nil {
				errs = append(errs, &ValidationError{Field: name, Message: "must be a whole number"})
				continue
			}
			*dst = v
			continue
		}
		v, err := ParseAmount(raw)
		if err != nil {
			errs = append(errs, &ValidationError{Field: name, Message: "must be a number"})
			continue
		}
		*decimals[name] = v
	}

	var unknown []string
	for name := range fields {
		if !isKnownField(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, &ValidationError{Field: name, Message: "is not a recognised field"})
	}

	if len(errs) > 0 {
		return ProfileInput{}, errs
	}
	if err := p.Validate(); err != nil {
		return ProfileInput{}, err
	}
	return p, nil
}

// ParseWholeNumber parses an integer field value.
func ParseWholeNumber(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// ParseAmount parses a monetary or percentage value. Thousands separators,
// a leading currency sign and a trailing percent sign are tolerated.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}

func isKnownField(name string) bool {
	for _, f := range ProfileFieldOrder {
		if f == name {
			return true
		}
	}
	return false
}
