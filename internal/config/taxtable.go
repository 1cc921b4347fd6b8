package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrTaxTableUnavailable is returned when the configured tax table file does not exist.
var ErrTaxTableUnavailable = errors.New("tax table unavailable")

// LoadTaxTable reads a bracket table from path. The format follows the file
// extension: .toml is decoded as TOML, anything else as YAML (which covers JSON).
func LoadTaxTable(path string) (calculation.TaxTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTaxTableUnavailable, path)
		}
		return nil, fmt.Errorf("failed to read tax table %s: %w", path, err)
	}

	var table calculation.TaxTable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		table, err = ParseTaxTableTOML(data)
	default:
		table, err = ParseTaxTableYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// tableKeys are the top-level keys that may hold the bracket list. The
// "tax_brackets" spelling is the layout of the older config.json files.
var tableKeys = []string{"brackets", "tax_brackets"}

// ParseTaxTableYAML accepts either a bare list of brackets or a mapping with a
// "brackets" or "tax_brackets" key. Any other top-level key is an error.
func ParseTaxTableYAML(data []byte) (calculation.TaxTable, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse tax table: %w", err)
	}
	if root.IsZero() || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", calculation.ErrInvalidTaxTable)
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
	case yaml.MappingNode:
		list, err := bracketList(node)
		if err != nil {
			return nil, err
		}
		node = list
	default:
		return nil, fmt.Errorf("%w: expected a list of brackets or a brackets key", calculation.ErrInvalidTaxTable)
	}

	var brackets []domain.TaxBracket
	if err := node.Decode(&brackets); err != nil {
		return nil, fmt.Errorf("failed to parse tax table: %w", err)
	}
	return calculation.TaxTable(brackets), nil
}

// bracketList returns the value of the single bracket key in a mapping node.
func bracketList(m *yaml.Node) (*yaml.Node, error) {
	var found *yaml.Node
	var foundKey string
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		if !slices.Contains(tableKeys, key) {
			return nil, fmt.Errorf("%w: unrecognised key %q (want one of %s)",
				calculation.ErrInvalidTaxTable, key, strings.Join(tableKeys, ", "))
		}
		if found != nil {
			return nil, fmt.Errorf("%w: both %q and %q are set", calculation.ErrInvalidTaxTable, foundKey, key)
		}
		found, foundKey = m.Content[i+1], key
	}
	if found == nil {
		return nil, fmt.Errorf("%w: no brackets key", calculation.ErrInvalidTaxTable)
	}
	return found, nil
}

// tomlTaxTable mirrors the TOML layout:
//
//	[[brackets]]
//	min = 0
//	max = 9950
//	rate = 10
//
// max may be omitted, the float inf, or the string "inf" for the top band.
type tomlTaxTable struct {
	Brackets    []tomlBracket `toml:"brackets"`
	TaxBrackets []tomlBracket `toml:"tax_brackets"`
}

type tomlBracket struct {
	Min  any `toml:"min"`
	Max  any `toml:"max"`
	Rate any `toml:"rate"`
}

// ParseTaxTableTOML decodes a TOML bracket table. Keys other than the bracket
// arrays and their fields are rejected.
func ParseTaxTableTOML(data []byte) (calculation.TaxTable, error) {
	var raw tomlTaxTable
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML tax table: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unrecognised key %q", calculation.ErrInvalidTaxTable, undecoded[0].String())
	}
	rows := raw.Brackets
	switch {
	case len(raw.Brackets) > 0 && len(raw.TaxBrackets) > 0:
		return nil, fmt.Errorf("%w: both \"brackets\" and \"tax_brackets\" are set", calculation.ErrInvalidTaxTable)
	case len(raw.TaxBrackets) > 0:
		rows = raw.TaxBrackets
	}

	table := make(calculation.TaxTable, 0, len(rows))
	for i, b := range rows {
		bracket, err := domain.ParseTaxBracket(tomlText(b.Min), tomlText(b.Max), tomlText(b.Rate))
		if err != nil {
			return nil, fmt.Errorf("bracket %d: %w", i+1, err)
		}
		table = append(table, bracket)
	}
	return table, nil
}

func tomlText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsInf(x, 1) {
			return "inf"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
