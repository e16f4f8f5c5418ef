package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

var basicMapping = ColumnMapping{
	DateColumn:        "Date",
	DescriptionColumn: "Description",
	AmountColumn:      "Amount",
	DateFormat:        "dd/MM/yyyy",
}

func TestParse_ValidRows(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"15/06/2025,ACME INVOICE 104,1500.00\n" +
		"16/06/2025,COFFEE SHOP,-4.50\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	assert.Empty(t, res.Warnings)

	first := res.Transactions[0]
	assert.Equal(t, "ACME INVOICE 104", first.Description)
	assert.Equal(t, "1500.00", first.Amount.StringFixed(2))
	assert.Equal(t, model.KindIncome, first.Kind)
	assert.Equal(t, 2025, first.Date.Year())
	assert.Equal(t, 6, int(first.Date.Month()))
	assert.Equal(t, 15, first.Date.Day())
	assert.Equal(t, model.StatusPending, first.ReviewStatus)
	assert.Equal(t, model.FlagUnknown, first.BusinessFlag)
	assert.Empty(t, first.SuggestedCategory)
	assert.Zero(t, first.Confidence)
	assert.NotEmpty(t, first.ID)

	second := res.Transactions[1]
	assert.Equal(t, model.KindExpense, second.Kind)
	assert.Equal(t, "4.50", second.Amount.StringFixed(2))
}

func TestParse_BadDateSkipsRowWithWarning(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"INVALID,Payment,1000.00\n" +
		"15/06/2025,Valid Payment,500.00\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Valid Payment", res.Transactions[0].Description)
	assert.Equal(t, "500.00", res.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, model.KindIncome, res.Transactions[0].Kind)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.Contains(t, res.Warnings[0].String(), "line 2")
}

func TestParse_BadAmountSkipsRowWithWarning(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"15/06/2025,Payment,NOTANUMBER\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.Contains(t, res.Warnings[0].Message, "amount")
}

func TestParse_MissingColumnAbortsFile(t *testing.T) {
	input := "Date,Narrative,Amount\n" +
		"15/06/2025,Payment,500.00\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, `"Description"`)
}

func TestParse_CurrencyFormatting(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"15/06/2025,Invoice,\"£1,500.00\"\n" +
		"16/06/2025,Invoice,GBP 500.00\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, "1500.00", res.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "500.00", res.Transactions[1].Amount.StringFixed(2))
}

func TestParse_ZeroAmountIsExpenseShaped(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"15/06/2025,Zero,0.00\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, model.KindExpense, res.Transactions[0].Kind)
}

func TestParse_BlankLinesSkippedSilently(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"\n" +
		"15/06/2025,Payment,500.00\n" +
		"\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	assert.Len(t, res.Transactions, 1)
	assert.Empty(t, res.Warnings)
}

func TestParse_QuotedFields(t *testing.T) {
	input := "Date,Description,Amount\n" +
		`15/06/2025,"SMITH, JONES ""AND"" CO",-120.00` + "\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, `SMITH, JONES "AND" CO`, res.Transactions[0].Description)
}

func TestParse_TrimsHeaderAndFields(t *testing.T) {
	input := " Date , Description , Amount \n" +
		" 15/06/2025 , Payment , 500.00 \n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Payment", res.Transactions[0].Description)
}

func TestParse_DualColumn(t *testing.T) {
	mapping := ColumnMapping{
		DateColumn:        "Transaction Date",
		DescriptionColumn: "Transaction Description",
		IncomeColumn:      "Credit Amount",
		ExpenseColumn:     "Debit Amount",
		DateFormat:        "dd/MM/yyyy",
	}
	input := "Transaction Date,Transaction Description,Debit Amount,Credit Amount\n" +
		"15/06/2025,CLIENT PAYMENT,,2000.00\n" +
		"16/06/2025,OFFICE RENT,850.00,\n" +
		"17/06/2025,NOTHING HERE,,\n" +
		"18/06/2025,BOTH SIDES,10.00,20.00\n"

	res, err := Parse(strings.NewReader(input), mapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)

	assert.Equal(t, model.KindIncome, res.Transactions[0].Kind)
	assert.Equal(t, "2000.00", res.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, model.KindExpense, res.Transactions[1].Kind)
	assert.Equal(t, "850.00", res.Transactions[1].Amount.StringFixed(2))

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 4, res.Warnings[0].Line)
	assert.Contains(t, res.Warnings[0].Message, "neither")
	assert.Equal(t, 5, res.Warnings[1].Line)
	assert.Contains(t, res.Warnings[1].Message, "both")
}

func TestParse_ReferenceColumn(t *testing.T) {
	mapping := basicMapping
	mapping.ReferenceColumn = "Transaction ID"
	input := "Date,Description,Amount,Transaction ID\n" +
		"15/06/2025,Payment,500.00,tx_0001\n"

	res, err := Parse(strings.NewReader(input), mapping)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "tx_0001", res.Transactions[0].ExternalID)
}

func TestParse_ShortRowWarns(t *testing.T) {
	input := "Date,Description,Amount\n" +
		"15/06/2025\n"

	res, err := Parse(strings.NewReader(input), basicMapping)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Line)
}

func TestParse_EmptyFile(t *testing.T) {
	res, err := Parse(strings.NewReader(""), basicMapping)
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	require.Len(t, res.Warnings, 1)
}

func TestParse_InvalidMapping(t *testing.T) {
	_, err := Parse(strings.NewReader("a,b\n"), ColumnMapping{DateColumn: "Date"})
	assert.Error(t, err)
}

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1500.00", "1500.00"},
		{"£1,500.00", "1500.00"},
		{"GBP 500.00", "500.00"},
		{"-4.50", "-4.50"},
		{"-£4.50", "-4.50"},
		{"$2,000", "2000.00"},
		{"0", "0.00"},
	}
	for _, tc := range tests {
		got, err := cleanAmount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got.StringFixed(2), "input %q", tc.in)
	}

	_, err := cleanAmount("NOTANUMBER")
	assert.Error(t, err)
	_, err = cleanAmount("")
	assert.Error(t, err)
}

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, "02/01/2006", layoutFor("dd/MM/yyyy"))
	assert.Equal(t, "2006-01-02", layoutFor("yyyy-MM-dd"))
	assert.Equal(t, "2/1/06", layoutFor("d/M/yy"))
}
