package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Storage  StorageConfig  `yaml:"storage"`
	Import   ImportConfig   `yaml:"import"`
	Matching MatchingConfig `yaml:"matching"`
	Ledger   LedgerConfig   `yaml:"ledger"`
}

// BusinessConfig identifies the business entity whose feed is reconciled.
type BusinessConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageConfig selects the backing store. An empty DSN means in-memory,
// which only makes sense for tests and throwaway runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// ImportConfig controls statement ingestion.
type ImportConfig struct {
	DefaultPreset   string `yaml:"default_preset"`
	RulesFile       string `yaml:"rules_file"`
	UndoWindowHours int    `yaml:"undo_window_hours"`
}

// MatchingConfig holds the reconciliation matcher's calibration.
type MatchingConfig struct {
	WindowDays        int     `yaml:"window_days"`
	AmountWeight      float64 `yaml:"amount_weight"`
	DateWeight        float64 `yaml:"date_weight"`
	DescriptionWeight float64 `yaml:"description_weight"`
	MinConfidence     float64 `yaml:"min_confidence"`
	ExactThreshold    float64 `yaml:"exact_threshold"`
	LikelyThreshold   float64 `yaml:"likely_threshold"`
	PossibleThreshold float64 `yaml:"possible_threshold"`
}

// LedgerConfig points at the manual ledger CSV exports used as the
// matching candidate pool.
type LedgerConfig struct {
	IncomeCSV  string `yaml:"income_csv"`
	ExpenseCSV string `yaml:"expense_csv"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessID, businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			ID:   businessID,
			Name: businessName,
		},
		Import: ImportConfig{
			DefaultPreset:   "barclays",
			RulesFile:       "rules/categorization-rules.yaml",
			UndoWindowHours: 72,
		},
		Matching: MatchingConfig{
			WindowDays:        7,
			AmountWeight:      0.5,
			DateWeight:        0.3,
			DescriptionWeight: 0.2,
			MinConfidence:     0.40,
			ExactThreshold:    0.95,
			LikelyThreshold:   0.70,
			PossibleThreshold: 0.40,
		},
		Ledger: LedgerConfig{
			IncomeCSV:  "ledger/income.csv",
			ExpenseCSV: "ledger/expense.csv",
		},
	}
}
