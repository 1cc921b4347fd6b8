package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// TaxBracket maps a contiguous income band to a marginal rate (a whole-number percentage).
// An invalid Max means the band has no upper limit.
type TaxBracket struct {
	Min  decimal.Decimal     `yaml:"min" json:"min"`
	Max  decimal.NullDecimal `yaml:"max" json:"max"`
	Rate decimal.Decimal     `yaml:"rate" json:"rate"`
}

// Contains reports whether income falls inside the band, both ends inclusive.
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return !b.Max.Valid || income.LessThanOrEqual(b.Max.Decimal)
}

// Unbounded reports whether the band extends to infinity.
func (b TaxBracket) Unbounded() bool {
	return !b.Max.Valid
}

// String renders the band as "[min, max] → rate%".
func (b TaxBracket) String() string {
	upper := "inf"
	if b.Max.Valid {
		upper = b.Max.Decimal.String()
	}
	return fmt.Sprintf("[%s, %s] → %s%%", b.Min.String(), upper, b.Rate.String())
}

// UnmarshalYAML accepts numeric edges and the "inf" sentinel for an unbounded max.
func (b *TaxBracket) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		Min  string `yaml:"min"`
		Max  string `yaml:"max"`
		Rate string `yaml:"rate"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	parsed, err := ParseTaxBracket(aux.Min, aux.Max, aux.Rate)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseTaxBracket builds a band from its textual edges and rate.
func ParseTaxBracket(minText, maxText, rateText string) (TaxBracket, error) {
	minVal, err := decimal.NewFromString(strings.TrimSpace(minText))
	if err != nil {
		return TaxBracket{}, fmt.Errorf("invalid bracket min %q: %w", minText, err)
	}
	maxVal, err := ParseBandEdge(maxText)
	if err != nil {
		return TaxBracket{}, err
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(rateText))
	if err != nil {
		return TaxBracket{}, fmt.Errorf("invalid bracket rate %q: %w", rateText, err)
	}
	return TaxBracket{Min: minVal, Max: maxVal, Rate: rate}, nil
}

// ParseBandEdge parses an upper band edge; an empty value or any spelling of
// infinity yields an unbounded (invalid) NullDecimal.
func ParseBandEdge(text string) (decimal.NullDecimal, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch strings.TrimLeft(s, "+.") {
	case "", "inf", "infinity", "null", "~":
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid bracket max %q: %w", text, err)
	}
	return decimal.NewNullDecimal(d), nil
}
