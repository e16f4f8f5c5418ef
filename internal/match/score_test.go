package match

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestAmountScore(t *testing.T) {
	d := decimal.NewFromFloat

	assert.Equal(t, 1.0, amountScore(d(1500.00), d(1500.00)))
	assert.Equal(t, 1.0, amountScore(d(1500.00), d(1500.005)), "sub-cent difference is exact")
	assert.Equal(t, 0.0, amountScore(d(0), d(0.5)), "zero against nonzero")

	// 1% relative difference costs ten points of the component.
	near := amountScore(d(1500.00), d(1515.00))
	assert.InDelta(t, 0.9, near, 0.011)

	// Past 10% relative difference the component bottoms out.
	assert.Equal(t, 0.0, amountScore(d(1500.00), d(900.00)))
}

func TestDateScore(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }

	assert.Equal(t, 1.0, dateScore(day(15), day(15), 7))
	assert.InDelta(t, 1-1.0/7, dateScore(day(15), day(16), 7), 1e-9)
	assert.InDelta(t, 1-1.0/7, dateScore(day(16), day(15), 7), 1e-9)
	assert.Equal(t, 0.0, dateScore(day(15), day(22), 7))
	assert.Equal(t, 0.0, dateScore(day(15), day(30), 7))
}

func TestDateScore_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)
	assert.InDelta(t, 1-1.0/7, dateScore(a, b, 7), 1e-9)
}

func TestDescriptionScore(t *testing.T) {
	assert.Equal(t, 1.0, descriptionScore("ACME LTD", "Payment from Acme Ltd", ""))
	assert.Equal(t, 0.0, descriptionScore("ACME LTD", "", ""))
	assert.Equal(t, 0.0, descriptionScore("", "anything", ""))
	assert.Equal(t, 0.0, descriptionScore("ACME LTD", "EDF ENERGY", ""))

	// The reference participates in the manual side's token set.
	withRef := descriptionScore("TRANSFER INV-104", "Consulting", "INV-104")
	assert.Greater(t, withRef, 0.0)
}

func TestTokens(t *testing.T) {
	got := tokens("ACME Ltd, INV-104 x")
	assert.Equal(t, map[string]bool{"acme": true, "ltd": true, "inv": true, "104": true}, got)
}

func TestScore_Clamped(t *testing.T) {
	cal := DefaultCalibration()
	tx := model.BankTransaction{
		Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(100.00),
		Description: "ACME LTD",
	}
	entry := model.LedgerEntry{
		Date:        tx.Date,
		Amount:      decimal.NewFromFloat(100.00),
		Description: "Acme Ltd",
	}
	s := cal.score(tx, entry)
	assert.LessOrEqual(t, s, 1.0)
	assert.GreaterOrEqual(t, s, 0.95, "perfect match lands in the exact tier")
}
