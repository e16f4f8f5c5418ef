// Package store defines the persistence boundary for the reconciliation
// core. Implementations must enforce the uniqueness invariants — one active
// fingerprint per business, one active import unit per (business, file hash),
// one match per (bank transaction, manual entry, kind) — and must commit
// each bank-transaction mutation atomically with its audit-log entry.
package store

import (
	"errors"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

var (
	// ErrNotFound reports an unknown or soft-deleted entity id.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyImported reports an active import unit with the same
	// source file hash for the business.
	ErrAlreadyImported = errors.New("file already imported")

	// ErrDuplicateRow reports an active transaction with the same
	// fingerprint for the business.
	ErrDuplicateRow = errors.New("duplicate transaction fingerprint")

	// ErrUnitUndone reports an undo attempt on a unit that is not active.
	ErrUnitUndone = errors.New("import unit already undone")

	// ErrAlreadyResolved reports a resolution attempt on a match that has
	// already been confirmed or dismissed.
	ErrAlreadyResolved = errors.New("match already resolved")
)

// MutateFunc transforms a bank transaction and returns the new state paired
// with the audit-log entry recording the change. Returning an error aborts
// the mutation with nothing written.
type MutateFunc func(model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error)

// Store is the persistence capability required by the reconciliation core.
// Reads return active (non-soft-deleted) rows unless the method name says
// otherwise.
type Store interface {
	// InsertImportBatch persists one import unit and its member
	// transactions atomically, enforcing the file-hash and fingerprint
	// uniqueness invariants.
	InsertImportBatch(unit model.ImportUnit, txs []model.BankTransaction) error
	ImportUnit(businessID, unitID string) (model.ImportUnit, error)
	ActiveUnitByFileHash(businessID, fileHash string) (model.ImportUnit, error)
	// UndoImportUnit soft-deletes every member transaction, writes one
	// audit entry per member, and flips the unit to undone, atomically.
	UndoImportUnit(businessID, unitID, by, reason string, at time.Time) error

	BankTransaction(businessID, txID string) (model.BankTransaction, error)
	BankTransactionIncludingDeleted(businessID, txID string) (model.BankTransaction, error)
	BankTransactions(businessID string) ([]model.BankTransaction, error)
	BankTransactionsByStatus(businessID string, status model.ReviewStatus) ([]model.BankTransaction, error)
	ExistsByFingerprint(businessID, fingerprint string) (bool, error)
	CountActive(businessID string) (int, error)
	// MutateBankTransaction applies fn to the active transaction and
	// commits the new state together with fn's log entry, or neither.
	MutateBankTransaction(businessID, txID string, fn MutateFunc) error

	// ModificationLog returns entries for a transaction in chronological
	// order. Soft-deleting the transaction never hides its history.
	ModificationLog(bankTransactionID string) ([]model.ModificationLogEntry, error)

	// UpsertMatch inserts or refreshes a proposal keyed by its identity.
	// A resolved match with the same identity is left untouched.
	UpsertMatch(m model.ReconciliationMatch) error
	Match(matchID string) (model.ReconciliationMatch, error)
	MatchesByTransaction(bankTransactionID string) ([]model.ReconciliationMatch, error)
	ResolveMatch(matchID string, status model.MatchStatus, by string, at time.Time) error
	UnresolvedMatches(businessID string) ([]model.ReconciliationMatch, error)
	CountUnresolvedMatches(businessID string) (int, error)
}
