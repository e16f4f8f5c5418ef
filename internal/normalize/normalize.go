package normalize

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Warning reports a recoverable problem with an input file. Line is the
// 1-based physical line in the source file, counting the header.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Result is the output of normalizing one bank export.
type Result struct {
	Transactions []model.BankTransaction
	Warnings     []Warning
}

// fieldGetter returns the trimmed value of a mapped column in the current
// record, or ok=false when the record is too short to contain it.
type fieldGetter func(col string) (value string, ok bool)

// Parse reads a delimited bank export and produces canonical transaction
// candidates. Malformed rows become warnings and are skipped; a mapped
// column missing from the header aborts the whole file with a single
// warning and zero transactions. The returned error is reserved for an
// invalid mapping, never for bad file content.
func Parse(r io.Reader, mapping ColumnMapping) (Result, error) {
	if err := mapping.Validate(); err != nil {
		return Result{}, err
	}
	layout := layoutFor(mapping.DateFormat)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{Warnings: []Warning{{Line: 1, Message: "file is empty"}}}, nil
	}
	if err != nil {
		return Result{Warnings: []Warning{{Line: 1, Message: fmt.Sprintf("unreadable header row: %v", err)}}}, nil
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range mapping.mappedColumns() {
		if _, ok := index[col]; !ok {
			return Result{Warnings: []Warning{{
				Line:    1,
				Message: fmt.Sprintf("mapped column %q not found in header", col),
			}}}, nil
		}
	}

	var res Result
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{
				Line:    parseErrorLine(err),
				Message: fmt.Sprintf("malformed row: %v", err),
			})
			continue
		}
		line, _ := cr.FieldPos(0)

		txn, warn := parseRow(rec, index, mapping, layout, line)
		if warn != nil {
			res.Warnings = append(res.Warnings, *warn)
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res, nil
}

// parseRow converts one data record into a transaction candidate or a warning.
func parseRow(rec []string, index map[string]int, mapping ColumnMapping, layout string, line int) (model.BankTransaction, *Warning) {
	field := func(col string) (string, bool) {
		i := index[col]
		if i >= len(rec) {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}

	dateStr, ok := field(mapping.DateColumn)
	if !ok {
		return model.BankTransaction{}, &Warning{
			Line:    line,
			Message: fmt.Sprintf("row has %d fields, too few for the mapped columns", len(rec)),
		}
	}
	date, err := time.Parse(layout, dateStr)
	if err != nil {
		return model.BankTransaction{}, &Warning{Line: line, Message: fmt.Sprintf("unparseable date %q", dateStr)}
	}

	desc, _ := field(mapping.DescriptionColumn)
	ref := ""
	if mapping.ReferenceColumn != "" {
		ref, _ = field(mapping.ReferenceColumn)
	}

	amount, kind, warn := classify(field, mapping, line)
	if warn != nil {
		return model.BankTransaction{}, warn
	}

	return model.BankTransaction{
		ID:           id.New(),
		Date:         date,
		Amount:       amount,
		Kind:         kind,
		Description:  desc,
		ExternalID:   ref,
		ReviewStatus: model.StatusPending,
		BusinessFlag: model.FlagUnknown,
	}, nil
}

// classify determines the amount and income/expense shape of a row. The sign
// (or the column, in dual-column mode) decides the kind; the stored amount is
// always the absolute value.
func classify(field fieldGetter, mapping ColumnMapping, line int) (decimal.Decimal, model.EntryKind, *Warning) {
	if !mapping.DualColumn() {
		raw, ok := field(mapping.AmountColumn)
		if !ok {
			return decimal.Decimal{}, "", &Warning{Line: line, Message: "row too short for amount column"}
		}
		amt, err := cleanAmount(raw)
		if err != nil {
			return decimal.Decimal{}, "", &Warning{Line: line, Message: fmt.Sprintf("unparseable amount %q", raw)}
		}
		kind := model.KindExpense
		if amt.IsPositive() {
			kind = model.KindIncome
		}
		return amt.Abs(), kind, nil
	}

	incomeRaw, _ := field(mapping.IncomeColumn)
	expenseRaw, _ := field(mapping.ExpenseColumn)

	switch {
	case incomeRaw == "" && expenseRaw == "":
		return decimal.Decimal{}, "", &Warning{Line: line, Message: "neither income nor expense column is populated"}
	case incomeRaw != "" && expenseRaw != "":
		return decimal.Decimal{}, "", &Warning{Line: line, Message: "both income and expense columns are populated"}
	case incomeRaw != "":
		amt, err := cleanAmount(incomeRaw)
		if err != nil {
			return decimal.Decimal{}, "", &Warning{Line: line, Message: fmt.Sprintf("unparseable amount %q", incomeRaw)}
		}
		return amt.Abs(), model.KindIncome, nil
	default:
		amt, err := cleanAmount(expenseRaw)
		if err != nil {
			return decimal.Decimal{}, "", &Warning{Line: line, Message: fmt.Sprintf("unparseable amount %q", expenseRaw)}
		}
		return amt.Abs(), model.KindExpense, nil
	}
}

// parseErrorLine extracts the source line from a csv parse error.
func parseErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
