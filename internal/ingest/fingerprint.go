package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fingerprintSep separates tuple members so adjacent fields cannot collide.
const fingerprintSep = "\x1f"

// Fingerprint computes the stable duplicate-detection hash for a bank row.
// Re-exporting the same statement yields identical fingerprints; two
// different same-day, same-amount transactions differ by description or by
// the bank-supplied id.
func Fingerprint(businessID string, date time.Time, amount decimal.Decimal, description, externalID string) string {
	tuple := strings.Join([]string{
		businessID,
		date.Format("2006-01-02"),
		amount.StringFixed(2),
		description,
		externalID,
	}, fingerprintSep)
	sum := sha256.Sum256([]byte(tuple))
	return hex.EncodeToString(sum[:])
}

// FileHash identifies a source file by its raw contents.
func FileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
