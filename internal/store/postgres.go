package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// pgUniqueViolation is the Postgres error code for a unique-index conflict.
const pgUniqueViolation = "23505"

// Postgres is a gorm-backed Store. The uniqueness invariants live in the
// schema as (partial) unique indexes, so concurrent writers race on the
// index rather than on application-level checks.
type Postgres struct {
	db *gorm.DB
}

type bankTransactionRecord struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID     string `gorm:"column:business_id;type:varchar(64);not null;index"`
	ImportUnitID   string `gorm:"column:import_unit_id;type:uuid;index"`
	SourceFormatID string `gorm:"column:source_format_id;type:varchar(64)"`

	Date            time.Time       `gorm:"column:date;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Kind            string          `gorm:"column:kind;type:varchar(16);not null"`
	Description     string          `gorm:"column:description;type:text;not null"`
	AccountLastFour string          `gorm:"column:account_last_four;type:varchar(4)"`
	ExternalID      string          `gorm:"column:external_id;type:varchar(128)"`
	Fingerprint     string          `gorm:"column:fingerprint;type:char(64);not null;index"`

	ReviewStatus    string `gorm:"column:review_status;type:varchar(16);not null"`
	IncomeID        string `gorm:"column:income_id;type:varchar(64)"`
	ExpenseID       string `gorm:"column:expense_id;type:varchar(64)"`
	ExclusionReason string `gorm:"column:exclusion_reason;type:varchar(128)"`
	BusinessFlag    string `gorm:"column:business_flag;type:varchar(16);not null"`

	SuggestedCategory string  `gorm:"column:suggested_category;type:varchar(64)"`
	Confidence        float64 `gorm:"column:confidence;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`

	DeletedAt      *time.Time `gorm:"column:deleted_at;index"`
	DeletedBy      string     `gorm:"column:deleted_by;type:varchar(64)"`
	DeletionReason string     `gorm:"column:deletion_reason;type:varchar(128)"`
}

func (bankTransactionRecord) TableName() string { return "bank_transactions" }

type importUnitRecord struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID     string `gorm:"column:business_id;type:varchar(64);not null;index"`
	ImportedAt     time.Time
	SourceFile     string `gorm:"column:source_file;type:varchar(255);not null"`
	SourceFileHash string `gorm:"column:source_file_hash;type:char(64);not null"`
	Kind           string `gorm:"column:kind;type:varchar(16);not null"`

	TotalRows     int
	AcceptedCount int
	SkippedCount  int

	Status   string `gorm:"column:status;type:varchar(16);not null"`
	UndoneAt *time.Time
	UndoneBy string `gorm:"column:undone_by;type:varchar(64)"`
}

func (importUnitRecord) TableName() string { return "import_units" }

type modificationLogRecord struct {
	ID                string    `gorm:"column:id;type:uuid;primaryKey"`
	BankTransactionID string    `gorm:"column:bank_transaction_id;type:uuid;not null;index"`
	Type              string    `gorm:"column:modification_type;type:varchar(32);not null"`
	FieldName         string    `gorm:"column:field_name;type:varchar(64);not null"`
	PreviousValue     string    `gorm:"column:previous_value;type:text"`
	NewValue          string    `gorm:"column:new_value;type:text"`
	ModifiedBy        string    `gorm:"column:modified_by;type:varchar(64);not null"`
	ModifiedAt        time.Time `gorm:"column:modified_at;not null"`
	Seq               int64     `gorm:"column:seq;autoIncrement;uniqueIndex"`
}

func (modificationLogRecord) TableName() string { return "modification_log" }

type matchRecord struct {
	ID                string `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID        string `gorm:"column:business_id;type:varchar(64);not null;index"`
	BankTransactionID string `gorm:"column:bank_transaction_id;type:uuid;not null;uniqueIndex:idx_match_identity"`
	ManualEntryID     string `gorm:"column:manual_entry_id;type:varchar(64);not null;uniqueIndex:idx_match_identity"`
	ManualEntryKind   string `gorm:"column:manual_entry_kind;type:varchar(16);not null;uniqueIndex:idx_match_identity"`

	Confidence float64 `gorm:"column:confidence;not null"`
	Tier       string  `gorm:"column:tier;type:varchar(16);not null"`

	Status     string `gorm:"column:status;type:varchar(16);not null"`
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy string `gorm:"column:resolved_by;type:varchar(64)"`
}

func (matchRecord) TableName() string { return "reconciliation_matches" }

// OpenPostgres connects to the database and ensures the schema exists.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate() error {
	if err := p.db.AutoMigrate(
		&bankTransactionRecord{},
		&importUnitRecord{},
		&modificationLogRecord{},
		&matchRecord{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	// Partial unique indexes carry the soft-delete-aware invariants; gorm
	// tags cannot express the WHERE clause.
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bank_tx_fingerprint
		   ON bank_transactions (business_id, fingerprint)
		   WHERE deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_import_unit_file_hash
		   ON import_units (business_id, source_file_hash)
		   WHERE status = 'active'`,
	}
	for _, stmt := range stmts {
		if err := p.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// uniqueViolationOn reports whether err is a unique-index conflict whose
// constraint name contains the given fragment.
func uniqueViolationOn(err error, fragment string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, fragment)
}

func (p *Postgres) InsertImportBatch(unit model.ImportUnit, txs []model.BankTransaction) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toUnitRecord(unit)).Error; err != nil {
			if uniqueViolationOn(err, "file_hash") {
				return fmt.Errorf("file hash %s: %w", unit.SourceFileHash, ErrAlreadyImported)
			}
			return fmt.Errorf("inserting import unit: %w", err)
		}
		for _, t := range txs {
			if err := tx.Create(toBankRecord(t)).Error; err != nil {
				if uniqueViolationOn(err, "fingerprint") {
					return fmt.Errorf("fingerprint %s: %w", t.Fingerprint, ErrDuplicateRow)
				}
				return fmt.Errorf("inserting transaction: %w", err)
			}
		}
		return nil
	})
}

func (p *Postgres) ImportUnit(businessID, unitID string) (model.ImportUnit, error) {
	var rec importUnitRecord
	err := p.db.Where("business_id = ? AND id = ?", businessID, unitID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ImportUnit{}, fmt.Errorf("import unit %s: %w", unitID, ErrNotFound)
	}
	if err != nil {
		return model.ImportUnit{}, fmt.Errorf("finding import unit: %w", err)
	}
	unit := fromUnitRecord(rec)
	if err := p.db.Model(&bankTransactionRecord{}).
		Where("import_unit_id = ?", unitID).
		Order("date, id").
		Pluck("id", &unit.TransactionIDs).Error; err != nil {
		return model.ImportUnit{}, fmt.Errorf("listing unit members: %w", err)
	}
	return unit, nil
}

func (p *Postgres) ActiveUnitByFileHash(businessID, fileHash string) (model.ImportUnit, error) {
	var rec importUnitRecord
	err := p.db.Where("business_id = ? AND source_file_hash = ? AND status = ?",
		businessID, fileHash, string(model.UnitActive)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ImportUnit{}, fmt.Errorf("file hash %s: %w", fileHash, ErrNotFound)
	}
	if err != nil {
		return model.ImportUnit{}, fmt.Errorf("finding import unit: %w", err)
	}
	return fromUnitRecord(rec), nil
}

func (p *Postgres) UndoImportUnit(businessID, unitID, by, reason string, at time.Time) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var rec importUnitRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("business_id = ? AND id = ?", businessID, unitID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("import unit %s: %w", unitID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("finding import unit: %w", err)
		}
		if rec.Status != string(model.UnitActive) {
			return fmt.Errorf("import unit %s: %w", unitID, ErrUnitUndone)
		}

		var members []bankTransactionRecord
		if err := tx.Where("import_unit_id = ? AND deleted_at IS NULL", unitID).Find(&members).Error; err != nil {
			return fmt.Errorf("listing unit members: %w", err)
		}
		for _, member := range members {
			deletedAt := at
			updates := map[string]any{
				"deleted_at":      &deletedAt,
				"deleted_by":      by,
				"deletion_reason": reason,
				"updated_at":      at,
			}
			if err := tx.Model(&bankTransactionRecord{}).Where("id = ?", member.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("soft-deleting transaction %s: %w", member.ID, err)
			}
			entry := modificationLogRecord{
				ID:                id.New(),
				BankTransactionID: member.ID,
				Type:              string(model.ModificationExcluded),
				FieldName:         "deleted_at",
				NewValue:          at.Format(time.RFC3339),
				ModifiedBy:        by,
				ModifiedAt:        at,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("logging soft delete: %w", err)
			}
		}

		undoneAt := at
		return tx.Model(&importUnitRecord{}).Where("id = ?", unitID).Updates(map[string]any{
			"status":    string(model.UnitUndone),
			"undone_at": &undoneAt,
			"undone_by": by,
		}).Error
	})
}

func (p *Postgres) BankTransaction(businessID, txID string) (model.BankTransaction, error) {
	var rec bankTransactionRecord
	err := p.activeScope(businessID).Where("id = ?", txID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankTransaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("finding transaction: %w", err)
	}
	return fromBankRecord(rec), nil
}

func (p *Postgres) BankTransactionIncludingDeleted(businessID, txID string) (model.BankTransaction, error) {
	var rec bankTransactionRecord
	err := p.db.Where("business_id = ? AND id = ?", businessID, txID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BankTransaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("finding transaction: %w", err)
	}
	return fromBankRecord(rec), nil
}

func (p *Postgres) BankTransactions(businessID string) ([]model.BankTransaction, error) {
	var recs []bankTransactionRecord
	if err := p.activeScope(businessID).Order("date, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return fromBankRecords(recs), nil
}

func (p *Postgres) BankTransactionsByStatus(businessID string, status model.ReviewStatus) ([]model.BankTransaction, error) {
	var recs []bankTransactionRecord
	if err := p.activeScope(businessID).Where("review_status = ?", string(status)).
		Order("date, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return fromBankRecords(recs), nil
}

func (p *Postgres) ExistsByFingerprint(businessID, fingerprint string) (bool, error) {
	var n int64
	if err := p.activeScope(businessID).Where("fingerprint = ?", fingerprint).Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking fingerprint: %w", err)
	}
	return n > 0, nil
}

func (p *Postgres) CountActive(businessID string) (int, error) {
	var n int64
	if err := p.activeScope(businessID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return int(n), nil
}

func (p *Postgres) MutateBankTransaction(businessID, txID string, fn MutateFunc) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var rec bankTransactionRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("business_id = ? AND id = ? AND deleted_at IS NULL", businessID, txID).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("finding transaction: %w", err)
		}

		next, entry, err := fn(fromBankRecord(rec))
		if err != nil {
			return err
		}

		if err := tx.Save(toBankRecord(next)).Error; err != nil {
			return fmt.Errorf("saving transaction: %w", err)
		}
		logRec := toLogRecord(entry)
		if err := tx.Create(&logRec).Error; err != nil {
			return fmt.Errorf("appending log entry: %w", err)
		}
		return nil
	})
}

func (p *Postgres) ModificationLog(bankTransactionID string) ([]model.ModificationLogEntry, error) {
	var recs []modificationLogRecord
	if err := p.db.Where("bank_transaction_id = ?", bankTransactionID).
		Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing modification log: %w", err)
	}
	out := make([]model.ModificationLogEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromLogRecord(rec))
	}
	return out, nil
}

func (p *Postgres) UpsertMatch(m model.ReconciliationMatch) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var existing matchRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("bank_transaction_id = ? AND manual_entry_id = ? AND manual_entry_kind = ?",
				m.BankTransactionID, m.ManualEntryID, string(m.ManualEntryKind)).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(toMatchRecord(m)).Error; err != nil {
				return fmt.Errorf("inserting match: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("finding match: %w", err)
		}

		if existing.Status != string(model.MatchUnresolved) {
			// Resolved matches never reappear as unresolved.
			return nil
		}
		return tx.Model(&matchRecord{}).Where("id = ?", existing.ID).Updates(map[string]any{
			"confidence": m.Confidence,
			"tier":       string(m.Tier),
			"created_at": m.CreatedAt,
		}).Error
	})
}

func (p *Postgres) Match(matchID string) (model.ReconciliationMatch, error) {
	var rec matchRecord
	err := p.db.Where("id = ?", matchID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReconciliationMatch{}, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return model.ReconciliationMatch{}, fmt.Errorf("finding match: %w", err)
	}
	return fromMatchRecord(rec), nil
}

func (p *Postgres) MatchesByTransaction(bankTransactionID string) ([]model.ReconciliationMatch, error) {
	var recs []matchRecord
	if err := p.db.Where("bank_transaction_id = ?", bankTransactionID).
		Order("confidence DESC, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return fromMatchRecords(recs), nil
}

func (p *Postgres) ResolveMatch(matchID string, status model.MatchStatus, by string, at time.Time) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var rec matchRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", matchID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("finding match: %w", err)
		}
		if rec.Status != string(model.MatchUnresolved) {
			return fmt.Errorf("match %s: %w", matchID, ErrAlreadyResolved)
		}
		resolvedAt := at
		return tx.Model(&matchRecord{}).Where("id = ?", matchID).Updates(map[string]any{
			"status":      string(status),
			"resolved_at": &resolvedAt,
			"resolved_by": by,
		}).Error
	})
}

func (p *Postgres) UnresolvedMatches(businessID string) ([]model.ReconciliationMatch, error) {
	var recs []matchRecord
	if err := p.db.Where("business_id = ? AND status = ?", businessID, string(model.MatchUnresolved)).
		Order("confidence DESC, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing unresolved matches: %w", err)
	}
	return fromMatchRecords(recs), nil
}

func (p *Postgres) CountUnresolvedMatches(businessID string) (int, error) {
	var n int64
	if err := p.db.Model(&matchRecord{}).
		Where("business_id = ? AND status = ?", businessID, string(model.MatchUnresolved)).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting unresolved matches: %w", err)
	}
	return int(n), nil
}

// activeScope is the soft-delete predicate composed into every read.
func (p *Postgres) activeScope(businessID string) *gorm.DB {
	return p.db.Model(&bankTransactionRecord{}).
		Where("business_id = ? AND deleted_at IS NULL", businessID)
}

func toBankRecord(t model.BankTransaction) *bankTransactionRecord {
	return &bankTransactionRecord{
		ID:                t.ID,
		BusinessID:        t.BusinessID,
		ImportUnitID:      t.ImportUnitID,
		SourceFormatID:    t.SourceFormatID,
		Date:              t.Date,
		Amount:            t.Amount,
		Kind:              string(t.Kind),
		Description:       t.Description,
		AccountLastFour:   t.AccountLastFour,
		ExternalID:        t.ExternalID,
		Fingerprint:       t.Fingerprint,
		ReviewStatus:      string(t.ReviewStatus),
		IncomeID:          t.IncomeID,
		ExpenseID:         t.ExpenseID,
		ExclusionReason:   t.ExclusionReason,
		BusinessFlag:      string(t.BusinessFlag),
		SuggestedCategory: t.SuggestedCategory,
		Confidence:        t.Confidence,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		DeletedAt:         t.DeletedAt,
		DeletedBy:         t.DeletedBy,
		DeletionReason:    t.DeletionReason,
	}
}

func fromBankRecord(rec bankTransactionRecord) model.BankTransaction {
	return model.BankTransaction{
		ID:                rec.ID,
		BusinessID:        rec.BusinessID,
		ImportUnitID:      rec.ImportUnitID,
		SourceFormatID:    rec.SourceFormatID,
		Date:              rec.Date,
		Amount:            rec.Amount,
		Kind:              model.EntryKind(rec.Kind),
		Description:       rec.Description,
		AccountLastFour:   rec.AccountLastFour,
		ExternalID:        rec.ExternalID,
		Fingerprint:       rec.Fingerprint,
		ReviewStatus:      model.ReviewStatus(rec.ReviewStatus),
		IncomeID:          rec.IncomeID,
		ExpenseID:         rec.ExpenseID,
		ExclusionReason:   rec.ExclusionReason,
		BusinessFlag:      model.BusinessFlag(rec.BusinessFlag),
		SuggestedCategory: rec.SuggestedCategory,
		Confidence:        rec.Confidence,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
		DeletedAt:         rec.DeletedAt,
		DeletedBy:         rec.DeletedBy,
		DeletionReason:    rec.DeletionReason,
	}
}

func fromBankRecords(recs []bankTransactionRecord) []model.BankTransaction {
	out := make([]model.BankTransaction, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromBankRecord(rec))
	}
	return out
}

func toUnitRecord(u model.ImportUnit) *importUnitRecord {
	return &importUnitRecord{
		ID:             u.ID,
		BusinessID:     u.BusinessID,
		ImportedAt:     u.ImportedAt,
		SourceFile:     u.SourceFile,
		SourceFileHash: u.SourceFileHash,
		Kind:           string(u.Kind),
		TotalRows:      u.TotalRows,
		AcceptedCount:  u.AcceptedCount,
		SkippedCount:   u.SkippedCount,
		Status:         string(u.Status),
		UndoneAt:       u.UndoneAt,
		UndoneBy:       u.UndoneBy,
	}
}

func fromUnitRecord(rec importUnitRecord) model.ImportUnit {
	return model.ImportUnit{
		ID:             rec.ID,
		BusinessID:     rec.BusinessID,
		ImportedAt:     rec.ImportedAt,
		SourceFile:     rec.SourceFile,
		SourceFileHash: rec.SourceFileHash,
		Kind:           model.ImportKind(rec.Kind),
		TotalRows:      rec.TotalRows,
		AcceptedCount:  rec.AcceptedCount,
		SkippedCount:   rec.SkippedCount,
		Status:         model.UnitStatus(rec.Status),
		UndoneAt:       rec.UndoneAt,
		UndoneBy:       rec.UndoneBy,
	}
}

func toLogRecord(e model.ModificationLogEntry) modificationLogRecord {
	return modificationLogRecord{
		ID:                e.ID,
		BankTransactionID: e.BankTransactionID,
		Type:              string(e.Type),
		FieldName:         e.FieldName,
		PreviousValue:     e.PreviousValue,
		NewValue:          e.NewValue,
		ModifiedBy:        e.ModifiedBy,
		ModifiedAt:        e.ModifiedAt,
	}
}

func fromLogRecord(rec modificationLogRecord) model.ModificationLogEntry {
	return model.ModificationLogEntry{
		ID:                rec.ID,
		BankTransactionID: rec.BankTransactionID,
		Type:              model.ModificationType(rec.Type),
		FieldName:         rec.FieldName,
		PreviousValue:     rec.PreviousValue,
		NewValue:          rec.NewValue,
		ModifiedBy:        rec.ModifiedBy,
		ModifiedAt:        rec.ModifiedAt,
	}
}

func toMatchRecord(m model.ReconciliationMatch) *matchRecord {
	return &matchRecord{
		ID:                m.ID,
		BusinessID:        m.BusinessID,
		BankTransactionID: m.BankTransactionID,
		ManualEntryID:     m.ManualEntryID,
		ManualEntryKind:   string(m.ManualEntryKind),
		Confidence:        m.Confidence,
		Tier:              string(m.Tier),
		Status:            string(m.Status),
		CreatedAt:         m.CreatedAt,
		ResolvedAt:        m.ResolvedAt,
		ResolvedBy:        m.ResolvedBy,
	}
}

func fromMatchRecord(rec matchRecord) model.ReconciliationMatch {
	return model.ReconciliationMatch{
		ID:                rec.ID,
		BusinessID:        rec.BusinessID,
		BankTransactionID: rec.BankTransactionID,
		ManualEntryID:     rec.ManualEntryID,
		ManualEntryKind:   model.EntryKind(rec.ManualEntryKind),
		Confidence:        rec.Confidence,
		Tier:              model.Tier(rec.Tier),
		Status:            model.MatchStatus(rec.Status),
		CreatedAt:         rec.CreatedAt,
		ResolvedAt:        rec.ResolvedAt,
		ResolvedBy:        rec.ResolvedBy,
	}
}

func fromMatchRecords(recs []matchRecord) []model.ReconciliationMatch {
	out := make([]model.ReconciliationMatch, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromMatchRecord(rec))
	}
	return out
}
