package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	amt := decimal.NewFromFloat(500.00)

	a := Fingerprint("biz-1", date, amt, "ACME INVOICE", "")
	b := Fingerprint("biz-1", date, amt, "ACME INVOICE", "")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprint_DiffersByField(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	amt := decimal.NewFromFloat(500.00)
	base := Fingerprint("biz-1", date, amt, "ACME INVOICE", "")

	assert.NotEqual(t, base, Fingerprint("biz-2", date, amt, "ACME INVOICE", ""))
	assert.NotEqual(t, base, Fingerprint("biz-1", date.AddDate(0, 0, 1), amt, "ACME INVOICE", ""))
	assert.NotEqual(t, base, Fingerprint("biz-1", date, amt.Add(decimal.NewFromInt(1)), "ACME INVOICE", ""))
	assert.NotEqual(t, base, Fingerprint("biz-1", date, amt, "OTHER INVOICE", ""))
	assert.NotEqual(t, base, Fingerprint("biz-1", date, amt, "ACME INVOICE", "tx_1"))
}

func TestFingerprint_AmountScaleInsensitive(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	a := Fingerprint("biz-1", date, decimal.RequireFromString("500"), "X", "")
	b := Fingerprint("biz-1", date, decimal.RequireFromString("500.00"), "X", "")
	assert.Equal(t, a, b)
}

func TestFileHash(t *testing.T) {
	assert.Equal(t, FileHash([]byte("abc")), FileHash([]byte("abc")))
	assert.NotEqual(t, FileHash([]byte("abc")), FileHash([]byte("abd")))
}
