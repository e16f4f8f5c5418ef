package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Memory is an in-memory Store. A single mutex makes every operation
// atomic, which also gives the mutation+log both-or-neither guarantee.
type Memory struct {
	mu      sync.Mutex
	txs     map[string]model.BankTransaction
	units   map[string]model.ImportUnit
	log     map[string][]model.ModificationLogEntry
	matches map[string]model.ReconciliationMatch
	// matchIdentity maps (bankTx, manualEntry, kind) to a match id.
	matchIdentity map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		txs:           make(map[string]model.BankTransaction),
		units:         make(map[string]model.ImportUnit),
		log:           make(map[string][]model.ModificationLogEntry),
		matches:       make(map[string]model.ReconciliationMatch),
		matchIdentity: make(map[string]string),
	}
}

// active is the single soft-delete predicate composed into every read.
func active(t model.BankTransaction) bool {
	return !t.Deleted()
}

func matchIdentityKey(bankTxID, manualEntryID string, kind model.EntryKind) string {
	return bankTxID + "\x1f" + manualEntryID + "\x1f" + string(kind)
}

func (m *Memory) InsertImportBatch(unit model.ImportUnit, txs []model.BankTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.units {
		if u.BusinessID == unit.BusinessID && u.SourceFileHash == unit.SourceFileHash && u.Status == model.UnitActive {
			return fmt.Errorf("unit %s has file hash %s: %w", u.ID, u.SourceFileHash, ErrAlreadyImported)
		}
	}
	batch := make(map[string]bool, len(txs))
	for _, t := range txs {
		key := t.BusinessID + "\x1f" + t.Fingerprint
		if batch[key] || m.activeFingerprintExists(t.BusinessID, t.Fingerprint) {
			return fmt.Errorf("fingerprint %s: %w", t.Fingerprint, ErrDuplicateRow)
		}
		batch[key] = true
	}

	for _, t := range txs {
		m.txs[t.ID] = t
	}
	unit.TransactionIDs = append([]string(nil), unit.TransactionIDs...)
	m.units[unit.ID] = unit
	return nil
}

func (m *Memory) ImportUnit(businessID, unitID string) (model.ImportUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.units[unitID]
	if !ok || u.BusinessID != businessID {
		return model.ImportUnit{}, fmt.Errorf("import unit %s: %w", unitID, ErrNotFound)
	}
	u.TransactionIDs = append([]string(nil), u.TransactionIDs...)
	return u, nil
}

func (m *Memory) ActiveUnitByFileHash(businessID, fileHash string) (model.ImportUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.units {
		if u.BusinessID == businessID && u.SourceFileHash == fileHash && u.Status == model.UnitActive {
			return u, nil
		}
	}
	return model.ImportUnit{}, fmt.Errorf("file hash %s: %w", fileHash, ErrNotFound)
}

func (m *Memory) UndoImportUnit(businessID, unitID, by, reason string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.units[unitID]
	if !ok || u.BusinessID != businessID {
		return fmt.Errorf("import unit %s: %w", unitID, ErrNotFound)
	}
	if u.Status != model.UnitActive {
		return fmt.Errorf("import unit %s: %w", unitID, ErrUnitUndone)
	}

	for _, txID := range u.TransactionIDs {
		t, ok := m.txs[txID]
		if !ok || !active(t) {
			continue
		}
		deletedAt := at
		t.DeletedAt = &deletedAt
		t.DeletedBy = by
		t.DeletionReason = reason
		t.UpdatedAt = at
		m.txs[txID] = t
		m.log[txID] = append(m.log[txID], model.ModificationLogEntry{
			ID:                id.New(),
			BankTransactionID: txID,
			Type:              model.ModificationExcluded,
			FieldName:         "deleted_at",
			NewValue:          at.Format(time.RFC3339),
			ModifiedBy:        by,
			ModifiedAt:        at,
		})
	}

	undoneAt := at
	u.Status = model.UnitUndone
	u.UndoneAt = &undoneAt
	u.UndoneBy = by
	m.units[unitID] = u
	return nil
}

func (m *Memory) BankTransaction(businessID, txID string) (model.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeTx(businessID, txID)
}

func (m *Memory) BankTransactionIncludingDeleted(businessID, txID string) (model.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.txs[txID]
	if !ok || t.BusinessID != businessID {
		return model.BankTransaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	return t, nil
}

func (m *Memory) BankTransactions(businessID string) ([]model.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.BankTransaction
	for _, t := range m.txs {
		if t.BusinessID == businessID && active(t) {
			out = append(out, t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (m *Memory) BankTransactionsByStatus(businessID string, status model.ReviewStatus) ([]model.BankTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.BankTransaction
	for _, t := range m.txs {
		if t.BusinessID == businessID && active(t) && t.ReviewStatus == status {
			out = append(out, t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (m *Memory) ExistsByFingerprint(businessID, fingerprint string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeFingerprintExists(businessID, fingerprint), nil
}

func (m *Memory) CountActive(businessID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.txs {
		if t.BusinessID == businessID && active(t) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) MutateBankTransaction(businessID, txID string, fn MutateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.activeTx(businessID, txID)
	if err != nil {
		return err
	}

	next, entry, err := fn(t)
	if err != nil {
		return err
	}

	m.txs[txID] = next
	m.log[txID] = append(m.log[txID], entry)
	return nil
}

func (m *Memory) ModificationLog(bankTransactionID string) ([]model.ModificationLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.log[bankTransactionID]
	out := make([]model.ModificationLogEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *Memory) UpsertMatch(match model.ReconciliationMatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := matchIdentityKey(match.BankTransactionID, match.ManualEntryID, match.ManualEntryKind)
	if existingID, ok := m.matchIdentity[key]; ok {
		existing := m.matches[existingID]
		if existing.Status != model.MatchUnresolved {
			// Resolved matches never reappear as unresolved.
			return nil
		}
		existing.Confidence = match.Confidence
		existing.Tier = match.Tier
		existing.CreatedAt = match.CreatedAt
		m.matches[existingID] = existing
		return nil
	}

	m.matches[match.ID] = match
	m.matchIdentity[key] = match.ID
	return nil
}

func (m *Memory) Match(matchID string) (model.ReconciliationMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	match, ok := m.matches[matchID]
	if !ok {
		return model.ReconciliationMatch{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return match, nil
}

func (m *Memory) MatchesByTransaction(bankTransactionID string) ([]model.ReconciliationMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.ReconciliationMatch
	for _, match := range m.matches {
		if match.BankTransactionID == bankTransactionID {
			out = append(out, match)
		}
	}
	sortMatches(out)
	return out, nil
}

func (m *Memory) ResolveMatch(matchID string, status model.MatchStatus, by string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	match, ok := m.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if match.Status != model.MatchUnresolved {
		return fmt.Errorf("match %s: %w", matchID, ErrAlreadyResolved)
	}

	resolvedAt := at
	match.Status = status
	match.ResolvedAt = &resolvedAt
	match.ResolvedBy = by
	m.matches[matchID] = match
	return nil
}

func (m *Memory) UnresolvedMatches(businessID string) ([]model.ReconciliationMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.ReconciliationMatch
	for _, match := range m.matches {
		if match.BusinessID == businessID && match.Status == model.MatchUnresolved {
			out = append(out, match)
		}
	}
	sortMatches(out)
	return out, nil
}

func (m *Memory) CountUnresolvedMatches(businessID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, match := range m.matches {
		if match.BusinessID == businessID && match.Status == model.MatchUnresolved {
			n++
		}
	}
	return n, nil
}

// activeTx must be called with the mutex held.
func (m *Memory) activeTx(businessID, txID string) (model.BankTransaction, error) {
	t, ok := m.txs[txID]
	if !ok || t.BusinessID != businessID || !active(t) {
		return model.BankTransaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	return t, nil
}

// activeFingerprintExists must be called with the mutex held.
func (m *Memory) activeFingerprintExists(businessID, fingerprint string) bool {
	for _, t := range m.txs {
		if t.BusinessID == businessID && t.Fingerprint == fingerprint && active(t) {
			return true
		}
	}
	return false
}

func sortTransactions(txs []model.BankTransaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}

func sortMatches(matches []model.ReconciliationMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].ID < matches[j].ID
	})
}
