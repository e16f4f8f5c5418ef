package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a manually recorded income or expense row. The manual
// ledger is owned elsewhere; this core only reads it as the candidate pool
// for reconciliation matching.
type LedgerEntry struct {
	ID          string
	Kind        EntryKind
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Reference   string
}
