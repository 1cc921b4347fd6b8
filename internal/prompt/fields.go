package prompt

import (
	"errors"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// Field is one question of the profile form. Value holds the raw answer and
// survives between attempts so only the offending entry needs retyping.
type Field struct {
	Key         string
	Title       string
	Description string
	Value       string
	whole       bool
}

var questions = []Field{
	{Key: domain.FieldCurrentAge, Title: "Current age", whole: true},
	{Key: domain.FieldRetirementAge, Title: "Desired retirement age", whole: true},
	{Key: domain.FieldLifeExpectancy, Title: "Life expectancy age", whole: true},
	{Key: domain.FieldCurrentIncome, Title: "Current annual income"},
	{Key: domain.FieldSalaryIncreasePct, Title: "Expected annual salary increase", Description: "Percentage, e.g. 3 for 3%"},
	{Key: domain.FieldCurrentSavings, Title: "Current retirement savings"},
	{Key: domain.FieldAnnualContribPct, Title: "Annual contribution", Description: "Percentage of income, e.g. 10 for 10%"},
	{Key: domain.FieldEmployerMatchPct, Title: "Employer match", Description: "Percentage of your contribution matched, e.g. 50 for 50%"},
	{Key: domain.FieldEmployerMatchLimitPct, Title: "Employer match limit", Description: "Percentage of salary the match applies up to, e.g. 6 for 6%"},
	{Key: domain.FieldExpectedReturnPct, Title: "Expected annual return", Description: "Percentage, e.g. 7 for 7%"},
}

var (
	errRequired    = errors.New("a value is required")
	errWholeNumber = errors.New("enter a whole number")
	errNumber      = errors.New("enter a number")
)

// NewFields returns the profile questions in collection order, prefilled
// from values when present.
func NewFields(values map[string]string) []*Field {
	fields := make([]*Field, len(questions))
	for i := range questions {
		f := questions[i]
		f.Value = values[f.Key]
		fields[i] = &f
	}
	return fields
}

// Validate checks that s parses as this field's kind of number.
func (f *Field) Validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	if f.whole {
		if _, err := domain.ParseWholeNumber(s); err != nil {
			return errWholeNumber
		}
		return nil
	}
	if _, err := domain.ParseAmount(s); err != nil {
		return errNumber
	}
	return nil
}

// Values collects the answers keyed by field name.
func Values(fields []*Field) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
