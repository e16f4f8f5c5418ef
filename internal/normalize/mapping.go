package normalize

import (
	"errors"
	"strings"
)

// ColumnMapping describes how a bank export's columns map onto the canonical
// transaction shape. Exactly one of AmountColumn or the
// IncomeColumn/ExpenseColumn pair must be set.
type ColumnMapping struct {
	DateColumn        string
	DescriptionColumn string
	AmountColumn      string // single signed amount column
	IncomeColumn      string // dual-column layout: credits
	ExpenseColumn     string // dual-column layout: debits
	ReferenceColumn   string // optional bank-supplied transaction id
	DateFormat        string // pattern like "dd/MM/yyyy"
}

// DualColumn reports whether the mapping uses separate income and expense
// columns instead of one signed amount column.
func (m ColumnMapping) DualColumn() bool {
	return m.IncomeColumn != "" || m.ExpenseColumn != ""
}

// Validate checks the mapping is internally consistent.
func (m ColumnMapping) Validate() error {
	if m.DateColumn == "" {
		return errors.New("column mapping: date column is required")
	}
	if m.DescriptionColumn == "" {
		return errors.New("column mapping: description column is required")
	}
	if m.DateFormat == "" {
		return errors.New("column mapping: date format is required")
	}
	if m.AmountColumn == "" && !m.DualColumn() {
		return errors.New("column mapping: amount column or income/expense columns required")
	}
	if m.AmountColumn != "" && m.DualColumn() {
		return errors.New("column mapping: amount column and income/expense columns are mutually exclusive")
	}
	if m.DualColumn() && (m.IncomeColumn == "" || m.ExpenseColumn == "") {
		return errors.New("column mapping: both income and expense columns required in dual-column mode")
	}
	return nil
}

// mappedColumns returns the column names that must be present in the header.
func (m ColumnMapping) mappedColumns() []string {
	cols := []string{m.DateColumn, m.DescriptionColumn}
	if m.DualColumn() {
		cols = append(cols, m.IncomeColumn, m.ExpenseColumn)
	} else {
		cols = append(cols, m.AmountColumn)
	}
	if m.ReferenceColumn != "" {
		cols = append(cols, m.ReferenceColumn)
	}
	return cols
}

// layoutReplacer translates date-format patterns as written in bank
// documentation (dd/MM/yyyy) into Go reference layouts. Longer tokens first
// so "yyyy" is not consumed as two "yy".
var layoutReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MMM", "Jan",
	"MM", "01",
	"M", "1",
	"dd", "02",
	"d", "2",
)

// layoutFor converts a pattern like "dd/MM/yyyy" to a Go time layout.
func layoutFor(pattern string) string {
	return layoutReplacer.Replace(pattern)
}
