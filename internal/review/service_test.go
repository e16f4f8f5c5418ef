package review

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

const testBusiness = "biz-1"

var opAt = time.Date(2025, 6, 21, 9, 0, 0, 0, time.UTC)

// seedTransaction inserts one pending transaction and returns its id.
func seedTransaction(t *testing.T, st *store.Memory) string {
	t.Helper()
	txID := id.New()
	unitID := id.New()
	err := st.InsertImportBatch(model.ImportUnit{
		ID:             unitID,
		BusinessID:     testBusiness,
		ImportedAt:     opAt.Add(-time.Hour),
		SourceFile:     "june.csv",
		SourceFileHash: "hash-" + unitID,
		Kind:           model.ImportStatement,
		TotalRows:      1,
		AcceptedCount:  1,
		TransactionIDs: []string{txID},
		Status:         model.UnitActive,
	}, []model.BankTransaction{{
		ID:           txID,
		BusinessID:   testBusiness,
		ImportUnitID: unitID,
		Date:         time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromFloat(500),
		Kind:         model.KindIncome,
		Description:  "ACME INVOICE 104",
		Fingerprint:  "fp-" + txID,
		ReviewStatus: model.StatusPending,
		BusinessFlag: model.FlagUnknown,
	}})
	require.NoError(t, err)
	return txID
}

func TestCategorizeAsIncome(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.CategorizeAsIncome(testBusiness, txID, "inc-1", "alex", opAt))

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCategorized, tx.ReviewStatus)
	assert.Equal(t, "inc-1", tx.IncomeID)
	assert.Empty(t, tx.ExpenseID)

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ModificationCategorized, entries[0].Type)
	assert.Equal(t, "review_status", entries[0].FieldName)
	assert.Equal(t, string(model.StatusPending), entries[0].PreviousValue)
	assert.Equal(t, string(model.StatusCategorized), entries[0].NewValue)
	assert.Equal(t, "alex", entries[0].ModifiedBy)
}

func TestRecategorize_SwitchesLinkAndLogs(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.CategorizeAsIncome(testBusiness, txID, "inc-1", "alex", opAt))
	require.NoError(t, svc.CategorizeAsExpense(testBusiness, txID, "exp-9", "alex", opAt.Add(time.Minute)))

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCategorized, tx.ReviewStatus)
	assert.Equal(t, "exp-9", tx.ExpenseID)
	assert.Empty(t, tx.IncomeID, "income link must be cleared")

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ModificationCategorized, entries[0].Type)
	assert.Equal(t, model.ModificationRecategorized, entries[1].Type)
}

func TestExclude(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.Exclude(testBusiness, txID, "personal spending", "alex", opAt))

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExcluded, tx.ReviewStatus)
	assert.Equal(t, "personal spending", tx.ExclusionReason)
}

func TestSkip(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.Skip(testBusiness, txID, "alex", opAt))

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExcluded, tx.ReviewStatus)
	assert.Equal(t, model.ExclusionSkipped, tx.ExclusionReason)

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ModificationExcluded, entries[0].Type)
	assert.Equal(t, model.ExclusionSkipped, entries[0].NewValue)
}

func TestSetBusinessFlag_DoesNotTouchStatus(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.SetBusinessFlag(testBusiness, txID, model.FlagPersonal, "alex", opAt))

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tx.ReviewStatus)
	assert.Equal(t, model.FlagPersonal, tx.BusinessFlag)

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ModificationBusinessPersonalChanged, entries[0].Type)
	assert.Equal(t, string(model.FlagUnknown), entries[0].PreviousValue)
	assert.Equal(t, string(model.FlagPersonal), entries[0].NewValue)
}

func TestDelete_SoftDeletesAndLogs(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.Delete(testBusiness, txID, "duplicate entry", "alex", opAt))

	_, err := st.BankTransaction(testBusiness, txID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	tx, err := st.BankTransactionIncludingDeleted(testBusiness, txID)
	require.NoError(t, err)
	assert.True(t, tx.Deleted())
	assert.Equal(t, "duplicate entry", tx.DeletionReason)

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ModificationExcluded, entries[0].Type)
	assert.Equal(t, "deleted_at", entries[0].FieldName)
}

func TestOperationsOnDeletedTransaction(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)
	require.NoError(t, svc.Delete(testBusiness, txID, "", "alex", opAt))

	assert.ErrorIs(t, svc.CategorizeAsIncome(testBusiness, txID, "inc-1", "alex", opAt), store.ErrNotFound)
	assert.ErrorIs(t, svc.Exclude(testBusiness, txID, "x", "alex", opAt), store.ErrNotFound)
	assert.ErrorIs(t, svc.SetBusinessFlag(testBusiness, txID, model.FlagBusiness, "alex", opAt), store.ErrNotFound)

	// Only the deletion itself is in the log.
	entries, err := svc.History(txID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInvariantViolationsLeaveStateUntouched(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	assert.ErrorIs(t, svc.CategorizeAsIncome(testBusiness, txID, "", "alex", opAt), ErrInvariant)
	assert.ErrorIs(t, svc.CategorizeAsExpense(testBusiness, txID, "", "alex", opAt), ErrInvariant)
	assert.ErrorIs(t, svc.Exclude(testBusiness, txID, "", "alex", opAt), ErrInvariant)
	assert.ErrorIs(t, svc.SetBusinessFlag(testBusiness, txID, "maybe", "alex", opAt), ErrInvariant)

	tx, err := st.BankTransaction(testBusiness, txID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, tx.ReviewStatus)

	entries, err := svc.History(txID)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected operations must not log")
}

func TestLogEntryPerAcceptedOperation(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st)
	txID := seedTransaction(t, st)

	require.NoError(t, svc.CategorizeAsIncome(testBusiness, txID, "inc-1", "alex", opAt))
	require.NoError(t, svc.SetBusinessFlag(testBusiness, txID, model.FlagBusiness, "alex", opAt.Add(time.Minute)))
	require.NoError(t, svc.CategorizeAsIncome(testBusiness, txID, "inc-2", "alex", opAt.Add(2*time.Minute)))
	assert.Error(t, svc.CategorizeAsIncome(testBusiness, txID, "", "alex", opAt.Add(3*time.Minute)))
	require.NoError(t, svc.Skip(testBusiness, txID, "alex", opAt.Add(4*time.Minute)))

	entries, err := svc.History(txID)
	require.NoError(t, err)
	require.Len(t, entries, 4, "one entry per accepted operation")
	assert.Equal(t, model.ModificationCategorized, entries[0].Type)
	assert.Equal(t, model.ModificationBusinessPersonalChanged, entries[1].Type)
	assert.Equal(t, model.ModificationRecategorized, entries[2].Type)
	assert.Equal(t, model.ModificationExcluded, entries[3].Type)
}

func TestUnknownTransaction(t *testing.T) {
	svc := NewService(store.NewMemory())
	assert.ErrorIs(t, svc.CategorizeAsIncome(testBusiness, "missing", "inc-1", "alex", opAt), store.ErrNotFound)
}
