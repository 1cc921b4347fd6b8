package prompt

import (
	"testing"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewFields(t *testing.T) {
	fields := NewFields(map[string]string{domain.FieldCurrentAge: "42"})
	assert.Len(t, fields, len(domain.ProfileFieldOrder))
	for i, f := range fields {
		assert.Equal(t, domain.ProfileFieldOrder[i], f.Key)
		assert.NotEmpty(t, f.Title)
	}
	assert.Equal(t, "42", fields[0].Value)
	assert.Empty(t, fields[1].Value)

	// fields are independent copies
	fields[1].Value = "65"
	assert.Empty(t, NewFields(nil)[1].Value)
}

func TestFieldValidate(t *testing.T) {
	age := NewFields(nil)[0]
	income := NewFields(nil)[3]

	tests := []struct {
		name  string
		field *Field
		input string
		want  error
	}{
		{"whole number", age, "30", nil},
		{"padded whole number", age, " 30 ", nil},
		{"fractional age", age, "30.5", errWholeNumber},
		{"empty", age, "  ", errRequired},
		{"amount with separators", income, "$60,000.50", nil},
		{"percent suffix", income, "7%", nil},
		{"not a number", income, "lots", errNumber},
		{"empty amount", income, "", errRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Validate(tt.input))
		})
	}
}

func TestValues(t *testing.T) {
	fields := NewFields(referenceAnswers)
	assert.Equal(t, referenceAnswers, Values(fields))
}
