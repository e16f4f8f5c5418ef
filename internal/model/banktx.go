package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReviewStatus represents the review lifecycle state of a bank transaction.
type ReviewStatus string

const (
	StatusPending     ReviewStatus = "pending"
	StatusCategorized ReviewStatus = "categorized"
	StatusExcluded    ReviewStatus = "excluded"
)

// ExclusionSkipped is the exclusion reason recorded when the user skips a
// transaction rather than excluding it for a business rule.
const ExclusionSkipped = "SKIPPED"

// EntryKind classifies a money movement as income-shaped or expense-shaped.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// BusinessFlag is the tri-state business/personal marker.
type BusinessFlag string

const (
	FlagUnknown  BusinessFlag = "unknown"
	FlagBusiness BusinessFlag = "business"
	FlagPersonal BusinessFlag = "personal"
)

// BankTransaction is one observed bank-ledger line. Amount holds the
// absolute value; Kind carries what the sign encoded in the source export.
type BankTransaction struct {
	ID             string
	BusinessID     string
	ImportUnitID   string // empty for directly entered transactions
	SourceFormatID string // bank preset that normalized it, empty for manual

	Date            time.Time
	Amount          decimal.Decimal
	Kind            EntryKind
	Description     string
	AccountLastFour string
	ExternalID      string // bank-supplied transaction id, often empty
	Fingerprint     string

	ReviewStatus    ReviewStatus
	IncomeID        string // set only when categorized as income
	ExpenseID       string // set only when categorized as expense
	ExclusionReason string // set only when excluded
	BusinessFlag    BusinessFlag

	SuggestedCategory string
	Confidence        float64

	CreatedAt time.Time
	UpdatedAt time.Time

	DeletedAt      *time.Time
	DeletedBy      string
	DeletionReason string
}

// Deleted reports whether the transaction has been soft-deleted.
func (t BankTransaction) Deleted() bool {
	return t.DeletedAt != nil
}
