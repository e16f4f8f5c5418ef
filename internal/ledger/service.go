package ledger

import (
	"fmt"
	"os"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Service provides read-only in-memory lookup over the manual ledger. The
// manual ledger is owned by the income/expense modules; this core only
// consumes it as the candidate pool for reconciliation matching.
type Service struct {
	entries []model.LedgerEntry
	byID    map[string]model.LedgerEntry
}

// NewService creates a Service from manual ledger rows.
func NewService(entries []model.LedgerEntry) *Service {
	byID := make(map[string]model.LedgerEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &Service{entries: entries, byID: byID}
}

// Load reads income and expense CSV exports. A missing file contributes
// zero entries of that kind.
func Load(incomePath, expensePath string) (*Service, error) {
	var entries []model.LedgerEntry

	income, err := readFile(incomePath, model.KindIncome)
	if err != nil {
		return nil, err
	}
	expense, err := readFile(expensePath, model.KindExpense)
	if err != nil {
		return nil, err
	}

	entries = append(entries, income...)
	entries = append(entries, expense...)
	return NewService(entries), nil
}

func readFile(path string, kind model.EntryKind) ([]model.LedgerEntry, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s ledger: %w", kind, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f, kind)
	if err != nil {
		return nil, fmt.Errorf("reading %s ledger %s: %w", kind, path, err)
	}
	return entries, nil
}

// All returns every entry.
func (s *Service) All() []model.LedgerEntry {
	return s.entries
}

// Get returns an entry by id.
func (s *Service) Get(entryID string) (model.LedgerEntry, bool) {
	e, ok := s.byID[entryID]
	return e, ok
}

// EntriesAround returns entries of one kind dated within windowDays either
// side of date.
func (s *Service) EntriesAround(kind model.EntryKind, date time.Time, windowDays int) []model.LedgerEntry {
	lo := date.AddDate(0, 0, -windowDays)
	hi := date.AddDate(0, 0, windowDays)

	var out []model.LedgerEntry
	for _, e := range s.entries {
		if e.Kind != kind {
			continue
		}
		if e.Date.Before(lo) || e.Date.After(hi) {
			continue
		}
		out = append(out, e)
	}
	return out
}
