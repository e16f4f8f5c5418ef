package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/categorize"
	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/normalize"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// ErrUndoWindowExpired reports an undo attempt on a unit imported longer
// ago than the configured eligibility window.
var ErrUndoWindowExpired = errors.New("undo window expired")

// DefaultUndoWindow bounds how long after import a unit stays undoable.
const DefaultUndoWindow = 72 * time.Hour

// Service runs the ingestion pipeline: normalize, deduplicate, persist one
// import unit per file, and undo whole units.
type Service struct {
	store       store.Store
	categorizer *categorize.Service
	undoWindow  time.Duration
}

// NewService creates an ingestion Service. categorizer may be nil to skip
// category suggestions; undoWindow <= 0 selects DefaultUndoWindow.
func NewService(st store.Store, categorizer *categorize.Service, undoWindow time.Duration) *Service {
	if undoWindow <= 0 {
		undoWindow = DefaultUndoWindow
	}
	return &Service{store: st, categorizer: categorizer, undoWindow: undoWindow}
}

// Result reports the outcome of one ingestion call.
type Result struct {
	Unit     model.ImportUnit
	Accepted []model.BankTransaction
	Skipped  int
	Warnings []normalize.Warning
}

// Ingest normalizes a bank export and persists the accepted rows as one
// import unit. A file whose hash matches an active unit is rejected whole
// with store.ErrAlreadyImported; individual rows already known by
// fingerprint are counted as skipped.
func (s *Service) Ingest(businessID, sourceFile, sourceFormatID string, data []byte, mapping normalize.ColumnMapping, at time.Time) (Result, error) {
	fileHash := FileHash(data)
	if _, err := s.store.ActiveUnitByFileHash(businessID, fileHash); err == nil {
		return Result{}, fmt.Errorf("%s: %w", sourceFile, store.ErrAlreadyImported)
	} else if !errors.Is(err, store.ErrNotFound) {
		return Result{}, fmt.Errorf("checking file hash: %w", err)
	}

	parsed, err := normalize.Parse(bytes.NewReader(data), mapping)
	if err != nil {
		return Result{}, err
	}

	unitID := id.New()
	var accepted []model.BankTransaction
	skipped := 0
	seen := make(map[string]bool, len(parsed.Transactions))
	for _, t := range parsed.Transactions {
		fp := Fingerprint(businessID, t.Date, signedAmount(t), t.Description, t.ExternalID)
		if seen[fp] {
			// The file itself repeats the row.
			skipped++
			continue
		}
		exists, err := s.store.ExistsByFingerprint(businessID, fp)
		if err != nil {
			return Result{}, fmt.Errorf("checking fingerprint: %w", err)
		}
		if exists {
			skipped++
			continue
		}
		seen[fp] = true

		t.BusinessID = businessID
		t.ImportUnitID = unitID
		t.SourceFormatID = sourceFormatID
		t.Fingerprint = fp
		t.CreatedAt = at
		t.UpdatedAt = at
		if s.categorizer != nil {
			if cat, conf, ok := s.categorizer.Suggest(t.Description); ok {
				t.SuggestedCategory = cat
				t.Confidence = conf
			}
		}
		accepted = append(accepted, t)
	}

	unit := model.ImportUnit{
		ID:             unitID,
		BusinessID:     businessID,
		ImportedAt:     at,
		SourceFile:     sourceFile,
		SourceFileHash: fileHash,
		Kind:           model.ImportStatement,
		TotalRows:      len(parsed.Transactions),
		AcceptedCount:  len(accepted),
		SkippedCount:   skipped,
		TransactionIDs: transactionIDs(accepted),
		Status:         model.UnitActive,
	}

	if err := s.store.InsertImportBatch(unit, accepted); err != nil {
		return Result{}, err
	}

	return Result{Unit: unit, Accepted: accepted, Skipped: skipped, Warnings: parsed.Warnings}, nil
}

// Undo soft-deletes every member of an import unit and marks it undone.
// Refused for units outside the eligibility window or already undone.
func (s *Service) Undo(businessID, unitID, by string, at time.Time) error {
	unit, err := s.store.ImportUnit(businessID, unitID)
	if err != nil {
		return err
	}
	if unit.Status != model.UnitActive {
		return fmt.Errorf("import unit %s: %w", unitID, store.ErrUnitUndone)
	}
	if at.Sub(unit.ImportedAt) > s.undoWindow {
		return fmt.Errorf("import unit %s imported %s ago: %w", unitID, at.Sub(unit.ImportedAt), ErrUndoWindowExpired)
	}
	return s.store.UndoImportUnit(businessID, unitID, by, "import undone", at)
}

// signedAmount reconstructs the source sign for fingerprinting, so an
// income and an expense of the same size never share a fingerprint.
func signedAmount(t model.BankTransaction) decimal.Decimal {
	if t.Kind == model.KindExpense && !t.Amount.IsZero() {
		return t.Amount.Neg()
	}
	return t.Amount
}

func transactionIDs(txs []model.BankTransaction) []string {
	ids := make([]string, 0, len(txs))
	for _, t := range txs {
		ids = append(ids, t.ID)
	}
	return ids
}
