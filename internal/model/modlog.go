package model

import "time"

// ModificationType classifies an audit-log entry.
type ModificationType string

const (
	ModificationCategorized             ModificationType = "categorized"
	ModificationRecategorized           ModificationType = "recategorized"
	ModificationExcluded                ModificationType = "excluded"
	ModificationBusinessPersonalChanged ModificationType = "business_personal_changed"
)

// ModificationLogEntry is one append-only audit record for a bank
// transaction mutation. Entries are never edited or deleted.
type ModificationLogEntry struct {
	ID                string
	BankTransactionID string
	Type              ModificationType
	FieldName         string
	PreviousValue     string
	NewValue          string
	ModifiedBy        string
	ModifiedAt        time.Time
}
