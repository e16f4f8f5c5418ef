// Package match scores candidate links between pending bank transactions
// and manually recorded ledger entries, and manages their resolution.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// ErrNotPending reports a match-proposal attempt against a transaction
// that has already been reviewed.
var ErrNotPending = errors.New("transaction is not pending review")

// Outcome is the user's decision on a proposed match.
type Outcome string

const (
	OutcomeConfirm Outcome = "confirm"
	OutcomeDismiss Outcome = "dismiss"
)

// CandidatePool supplies manual ledger entries near a date. The manual
// ledger is read-only from this package's perspective.
type CandidatePool interface {
	EntriesAround(kind model.EntryKind, date time.Time, windowDays int) []model.LedgerEntry
}

// Service proposes and resolves reconciliation matches.
type Service struct {
	store store.Store
	pool  CandidatePool
	cal   Calibration
}

// NewService creates a matcher Service.
func NewService(st store.Store, pool CandidatePool, cal Calibration) *Service {
	return &Service{store: st, pool: pool, cal: cal}
}

// ProposeMatches scores manual ledger candidates for one pending bank
// transaction and persists the survivors, upserted by match identity so a
// re-run refines rather than duplicates proposals. Returns the
// transaction's unresolved proposals ordered by confidence descending.
func (s *Service) ProposeMatches(businessID, txID string, at time.Time) ([]model.ReconciliationMatch, error) {
	tx, err := s.store.BankTransaction(businessID, txID)
	if err != nil {
		return nil, err
	}
	if tx.ReviewStatus != model.StatusPending {
		return nil, fmt.Errorf("transaction %s has status %s: %w", txID, tx.ReviewStatus, ErrNotPending)
	}

	for _, entry := range s.pool.EntriesAround(tx.Kind, tx.Date, s.cal.WindowDays) {
		confidence := s.cal.score(tx, entry)
		if confidence < s.cal.MinConfidence {
			continue
		}
		tier, ok := model.TierFor(confidence, s.cal.Tiers)
		if !ok {
			continue
		}

		err := s.store.UpsertMatch(model.ReconciliationMatch{
			ID:                id.New(),
			BusinessID:        businessID,
			BankTransactionID: tx.ID,
			ManualEntryID:     entry.ID,
			ManualEntryKind:   entry.Kind,
			Confidence:        confidence,
			Tier:              tier,
			Status:            model.MatchUnresolved,
			CreatedAt:         at,
		})
		if err != nil {
			return nil, fmt.Errorf("upserting match: %w", err)
		}
	}

	return s.MatchesFor(txID)
}

// ProposeAllPending runs the matcher over every pending transaction for a
// business and returns the total number of open proposals.
func (s *Service) ProposeAllPending(businessID string, at time.Time) (int, error) {
	pending, err := s.store.BankTransactionsByStatus(businessID, model.StatusPending)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, tx := range pending {
		matches, err := s.ProposeMatches(businessID, tx.ID, at)
		if err != nil {
			return total, err
		}
		total += len(matches)
	}
	return total, nil
}

// MatchesFor returns a transaction's unresolved proposals ordered by
// confidence descending.
func (s *Service) MatchesFor(txID string) ([]model.ReconciliationMatch, error) {
	all, err := s.store.MatchesByTransaction(txID)
	if err != nil {
		return nil, err
	}
	var open []model.ReconciliationMatch
	for _, m := range all {
		if m.Status == model.MatchUnresolved {
			open = append(open, m)
		}
	}
	return open, nil
}

// Resolve stamps a user decision on a match. A resolved match never
// returns to the unresolved set.
func (s *Service) Resolve(matchID string, outcome Outcome, by string, at time.Time) (model.ReconciliationMatch, error) {
	var status model.MatchStatus
	switch outcome {
	case OutcomeConfirm:
		status = model.MatchConfirmed
	case OutcomeDismiss:
		status = model.MatchDismissed
	default:
		return model.ReconciliationMatch{}, fmt.Errorf("unknown outcome %q", outcome)
	}

	if err := s.store.ResolveMatch(matchID, status, by, at); err != nil {
		return model.ReconciliationMatch{}, err
	}
	return s.store.Match(matchID)
}

// Unresolved returns every open proposal for a business, highest
// confidence first.
func (s *Service) Unresolved(businessID string) ([]model.ReconciliationMatch, error) {
	return s.store.UnresolvedMatches(businessID)
}

// CountUnresolved returns the number of open proposals for a business.
func (s *Service) CountUnresolved(businessID string) (int, error) {
	return s.store.CountUnresolvedMatches(businessID)
}
