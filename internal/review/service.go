// Package review owns the lifecycle of stored bank transactions. Every
// accepted operation commits the new transaction state together with
// exactly one modification-log entry; rejected operations leave both
// untouched.
package review

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// ErrInvariant reports inconsistent inputs to a state transition. This is a
// caller programming error, not a user-recoverable condition.
var ErrInvariant = errors.New("invariant violation")

// Service is the transaction review state machine.
type Service struct {
	store store.Store
}

// NewService creates a review Service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CategorizeAsIncome links a transaction to a manual income entry. A
// transaction already categorized may be re-linked; that is logged as a
// re-categorization.
func (s *Service) CategorizeAsIncome(businessID, txID, incomeID, by string, at time.Time) error {
	if incomeID == "" {
		return fmt.Errorf("income id is required: %w", ErrInvariant)
	}
	return s.store.MutateBankTransaction(businessID, txID, func(t model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error) {
		entry := statusEntry(t, model.StatusCategorized, by, at)
		t.ReviewStatus = model.StatusCategorized
		t.IncomeID = incomeID
		t.ExpenseID = ""
		t.ExclusionReason = ""
		t.UpdatedAt = at
		return t, entry, nil
	})
}

// CategorizeAsExpense links a transaction to a manual expense entry.
func (s *Service) CategorizeAsExpense(businessID, txID, expenseID, by string, at time.Time) error {
	if expenseID == "" {
		return fmt.Errorf("expense id is required: %w", ErrInvariant)
	}
	return s.store.MutateBankTransaction(businessID, txID, func(t model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error) {
		entry := statusEntry(t, model.StatusCategorized, by, at)
		t.ReviewStatus = model.StatusCategorized
		t.ExpenseID = expenseID
		t.IncomeID = ""
		t.ExclusionReason = ""
		t.UpdatedAt = at
		return t, entry, nil
	})
}

// Exclude marks a transaction as excluded from the books for a reason.
func (s *Service) Exclude(businessID, txID, reason, by string, at time.Time) error {
	if reason == "" {
		return fmt.Errorf("exclusion reason is required: %w", ErrInvariant)
	}
	return s.store.MutateBankTransaction(businessID, txID, func(t model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error) {
		entry := model.ModificationLogEntry{
			ID:                id.New(),
			BankTransactionID: t.ID,
			Type:              model.ModificationExcluded,
			FieldName:         "exclusion_reason",
			PreviousValue:     string(t.ReviewStatus),
			NewValue:          reason,
			ModifiedBy:        by,
			ModifiedAt:        at,
		}
		t.ReviewStatus = model.StatusExcluded
		t.ExclusionReason = reason
		t.IncomeID = ""
		t.ExpenseID = ""
		t.UpdatedAt = at
		return t, entry, nil
	})
}

// Skip excludes a transaction as a user skip rather than a business rule.
func (s *Service) Skip(businessID, txID, by string, at time.Time) error {
	return s.Exclude(businessID, txID, model.ExclusionSkipped, by, at)
}

// SetBusinessFlag records the business/personal marker without touching
// the review status.
func (s *Service) SetBusinessFlag(businessID, txID string, flag model.BusinessFlag, by string, at time.Time) error {
	switch flag {
	case model.FlagUnknown, model.FlagBusiness, model.FlagPersonal:
	default:
		return fmt.Errorf("unknown business flag %q: %w", flag, ErrInvariant)
	}
	return s.store.MutateBankTransaction(businessID, txID, func(t model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error) {
		entry := model.ModificationLogEntry{
			ID:                id.New(),
			BankTransactionID: t.ID,
			Type:              model.ModificationBusinessPersonalChanged,
			FieldName:         "business_flag",
			PreviousValue:     string(t.BusinessFlag),
			NewValue:          string(flag),
			ModifiedBy:        by,
			ModifiedAt:        at,
		}
		t.BusinessFlag = flag
		t.UpdatedAt = at
		return t, entry, nil
	})
}

// Delete soft-deletes a transaction. The row is retained and its history
// stays queryable; active reads no longer see it.
func (s *Service) Delete(businessID, txID, reason, by string, at time.Time) error {
	if reason == "" {
		reason = "deleted by user"
	}
	return s.store.MutateBankTransaction(businessID, txID, func(t model.BankTransaction) (model.BankTransaction, model.ModificationLogEntry, error) {
		entry := model.ModificationLogEntry{
			ID:                id.New(),
			BankTransactionID: t.ID,
			Type:              model.ModificationExcluded,
			FieldName:         "deleted_at",
			NewValue:          at.Format(time.RFC3339),
			ModifiedBy:        by,
			ModifiedAt:        at,
		}
		deletedAt := at
		t.DeletedAt = &deletedAt
		t.DeletedBy = by
		t.DeletionReason = reason
		t.UpdatedAt = at
		return t, entry, nil
	})
}

// History returns the audit trail for a transaction in chronological order.
func (s *Service) History(bankTransactionID string) ([]model.ModificationLogEntry, error) {
	return s.store.ModificationLog(bankTransactionID)
}

// statusEntry builds the log entry for a categorization, distinguishing
// first-time categorization from re-categorization.
func statusEntry(t model.BankTransaction, next model.ReviewStatus, by string, at time.Time) model.ModificationLogEntry {
	mtype := model.ModificationCategorized
	if t.ReviewStatus == model.StatusCategorized {
		mtype = model.ModificationRecategorized
	}
	return model.ModificationLogEntry{
		ID:                id.New(),
		BankTransactionID: t.ID,
		Type:              mtype,
		FieldName:         "review_status",
		PreviousValue:     string(t.ReviewStatus),
		NewValue:          string(next),
		ModifiedBy:        by,
		ModifiedAt:        at,
	}
}
