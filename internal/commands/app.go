package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/ingest"
	"github.com/ledgerline-dev/ledgerline/internal/ledger"
	"github.com/ledgerline-dev/ledgerline/internal/match"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/review"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// app bundles the configured services behind every subcommand.
type app struct {
	cfg     *config.Config
	store   store.Store
	ingest  *ingest.Service
	review  *review.Service
	matcher *match.Service
}

// openApp loads the config and wires the service graph. An empty storage
// DSN selects the in-memory store, which is only useful for dry runs since
// nothing survives the process.
func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Business.ID == "" {
		return nil, fmt.Errorf("config %s: business.id is required", configPath)
	}

	var st store.Store
	if cfg.Storage.DSN != "" {
		st, err = store.OpenPostgres(cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
	} else {
		st = store.NewMemory()
	}

	rules, err := categorize.LoadRules(cfg.Import.RulesFile)
	if err != nil {
		return nil, err
	}
	categorizer := categorize.NewService(rules)

	pool, err := ledger.Load(cfg.Ledger.IncomeCSV, cfg.Ledger.ExpenseCSV)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   st,
		ingest:  ingest.NewService(st, categorizer, time.Duration(cfg.Import.UndoWindowHours)*time.Hour),
		review:  review.NewService(st),
		matcher: match.NewService(st, pool, calibration(cfg)),
	}, nil
}

func calibration(cfg *config.Config) match.Calibration {
	cal := match.DefaultCalibration()
	m := cfg.Matching
	if m.WindowDays > 0 {
		cal.WindowDays = m.WindowDays
	}
	if m.AmountWeight > 0 {
		cal.AmountWeight = m.AmountWeight
	}
	if m.DateWeight > 0 {
		cal.DateWeight = m.DateWeight
	}
	if m.DescriptionWeight > 0 {
		cal.DescriptionWeight = m.DescriptionWeight
	}
	if m.MinConfidence > 0 {
		cal.MinConfidence = m.MinConfidence
	}
	if m.ExactThreshold > 0 {
		cal.Tiers.Exact = m.ExactThreshold
	}
	if m.LikelyThreshold > 0 {
		cal.Tiers.Likely = m.LikelyThreshold
	}
	if m.PossibleThreshold > 0 {
		cal.Tiers.Possible = m.PossibleThreshold
	}
	return cal
}

func (a *app) businessID() string {
	return a.cfg.Business.ID
}

// actor names the operator recorded in audit-log entries.
func actor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "cli"
}

func statusLabel(t model.BankTransaction) string {
	if t.ReviewStatus == model.StatusExcluded && t.ExclusionReason == model.ExclusionSkipped {
		return "skipped"
	}
	return string(t.ReviewStatus)
}
