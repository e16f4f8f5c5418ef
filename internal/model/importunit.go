package model

import "time"

// UnitStatus is the lifecycle state of an import unit.
type UnitStatus string

const (
	UnitActive UnitStatus = "active"
	UnitUndone UnitStatus = "undone"
)

// ImportKind identifies how an import unit was produced.
type ImportKind string

const (
	ImportStatement ImportKind = "statement"
	ImportManual    ImportKind = "manual"
)

// ImportUnit is one ingestion batch, undoable as a whole.
type ImportUnit struct {
	ID             string
	BusinessID     string
	ImportedAt     time.Time
	SourceFile     string
	SourceFileHash string
	Kind           ImportKind

	TotalRows      int
	AcceptedCount  int
	SkippedCount   int
	TransactionIDs []string

	Status   UnitStatus
	UndoneAt *time.Time
	UndoneBy string
}
