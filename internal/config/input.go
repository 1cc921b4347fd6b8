package config

import (
	"fmt"
	"os"

	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProfileInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	profile, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return profile, nil
}

// Parse decodes and validates a profile document. JSON is accepted as a subset of YAML.
func (ip *InputParser) Parse(data []byte) (*domain.ProfileInput, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.IsZero() {
		return nil, fmt.Errorf("empty profile document")
	}

	// Profiles may be written bare or nested under a "profile:" key.
	node := &root
	var wrapper struct {
		Profile yaml.Node `yaml:"profile"`
	}
	if err := root.Decode(&wrapper); err == nil && !wrapper.Profile.IsZero() {
		node = &wrapper.Profile
	}

	var profile domain.ProfileInput
	if err := node.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile validates the loaded profile
func (ip *InputParser) ValidateProfile(profile *domain.ProfileInput) error {
	if profile == nil {
		return fmt.Errorf("no profile provided")
	}
	return profile.Validate()
}

// ApplyOverrides replaces individual fields of profile with textual values
// keyed by canonical field name, then revalidates the result.
func (ip *InputParser) ApplyOverrides(profile *domain.ProfileInput, overrides map[string]string) (*domain.ProfileInput, error) {
	fields := map[string]string{}
	if profile != nil {
		fields = profile.Fields()
	}
	for k, v := range overrides {
		fields[k] = v
	}
	merged, err := domain.ProfileFromFields(fields)
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// WriteProfile saves a profile as YAML
func (ip *InputParser) WriteProfile(filename string, profile *domain.ProfileInput) error {
	data, err := ip.MarshalProfile(profile)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// MarshalProfile renders a profile as a YAML document with a "profile:" root.
func (ip *InputParser) MarshalProfile(profile *domain.ProfileInput) ([]byte, error) {
	fields := profile.Fields()
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range domain.ProfileFieldOrder {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: fields[name]},
		)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "profile"},
		node,
	}}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return out, nil
}

// CreateExampleProfile returns the worked example profile used in documentation
func (ip *InputParser) CreateExampleProfile() *domain.ProfileInput {
	return &domain.ProfileInput{
		CurrentAge:            30,
		RetirementAge:         65,
		LifeExpectancy:        90,
		CurrentIncome:         decimal.NewFromInt(60000),
		SalaryIncreasePct:     decimal.NewFromInt(3),
		CurrentSavings:        decimal.NewFromInt(10000),
		AnnualContribPct:      decimal.NewFromInt(10),
		EmployerMatchPct:      decimal.NewFromInt(50),
		EmployerMatchLimitPct: decimal.NewFromInt(6),
		ExpectedReturnPct:     decimal.NewFromInt(7),
	}
}
