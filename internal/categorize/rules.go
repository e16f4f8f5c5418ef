package categorize

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a description keyword to a category with a fixed confidence.
// Matching is deterministic: case-insensitive substring, first rule wins.
type Rule struct {
	Match      string  `yaml:"match"`
	Category   string  `yaml:"category"`
	Confidence float64 `yaml:"confidence"`
}

// Service suggests categories for bank transaction descriptions.
type Service struct {
	rules []Rule
}

// NewService creates a Service from an ordered rule list.
func NewService(rules []Rule) *Service {
	return &Service{rules: rules}
}

// rulesFile is the on-disk shape of categorization-rules.yaml.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a categorization rules file. A missing file yields the
// default rule set.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultRules(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return f.Rules, nil
}

// SaveRules writes a rules file.
func SaveRules(path string, rules []Rule) error {
	data, err := yaml.Marshal(rulesFile{Rules: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// Suggest returns the category and confidence for a description, or
// ok=false when no rule matches.
func (s *Service) Suggest(description string) (category string, confidence float64, ok bool) {
	upper := strings.ToUpper(description)
	for _, r := range s.rules {
		if r.Match != "" && strings.Contains(upper, strings.ToUpper(r.Match)) {
			return r.Category, r.Confidence, true
		}
	}
	return "", 0, false
}

// DefaultRules is the starting rule set for a new business.
func DefaultRules() []Rule {
	return []Rule{
		{Match: "SALARY", Category: "employment_income", Confidence: 0.9},
		{Match: "INVOICE", Category: "sales_income", Confidence: 0.8},
		{Match: "HMRC", Category: "tax_payment", Confidence: 0.9},
		{Match: "AWS", Category: "software_subscriptions", Confidence: 0.85},
		{Match: "GITHUB", Category: "software_subscriptions", Confidence: 0.85},
		{Match: "GOOGLE", Category: "software_subscriptions", Confidence: 0.6},
		{Match: "TRAINLINE", Category: "travel", Confidence: 0.8},
		{Match: "TFL TRAVEL", Category: "travel", Confidence: 0.8},
		{Match: "RENT", Category: "premises", Confidence: 0.7},
		{Match: "INSURANCE", Category: "insurance", Confidence: 0.8},
		{Match: "ACCOUNTANT", Category: "professional_fees", Confidence: 0.8},
		{Match: "ROYAL MAIL", Category: "postage", Confidence: 0.8},
	}
}
