package match

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Calibration holds the matcher's scoring weights and thresholds. These are
// a starting calibration meant to be tuned against real data, so every
// value is configurable.
type Calibration struct {
	WindowDays        int
	AmountWeight      float64
	DateWeight        float64
	DescriptionWeight float64
	MinConfidence     float64
	Tiers             model.TierBounds
}

// DefaultCalibration returns the starting calibration.
func DefaultCalibration() Calibration {
	return Calibration{
		WindowDays:        7,
		AmountWeight:      0.5,
		DateWeight:        0.3,
		DescriptionWeight: 0.2,
		MinConfidence:     0.40,
		Tiers:             model.DefaultTierBounds(),
	}
}

// amountDecaySteepness controls how sharply the amount component falls off
// per unit of relative difference.
const amountDecaySteepness = 10

// score computes the composite confidence for one candidate pairing.
func (c Calibration) score(tx model.BankTransaction, entry model.LedgerEntry) float64 {
	s := c.AmountWeight*amountScore(tx.Amount, entry.Amount) +
		c.DateWeight*dateScore(tx.Date, entry.Date, c.WindowDays) +
		c.DescriptionWeight*descriptionScore(tx.Description, entry.Description, entry.Reference)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// amountScore is 1 for amounts equal to the cent and decays sharply with
// the relative difference.
func amountScore(bank, manual decimal.Decimal) float64 {
	if bank.Sub(manual).Abs().LessThan(decimal.New(1, -2)) {
		return 1
	}
	larger := decimal.Max(bank.Abs(), manual.Abs())
	if larger.IsZero() {
		return 0
	}
	rel, _ := bank.Sub(manual).Abs().Div(larger).Float64()
	s := 1 - rel*amountDecaySteepness
	if s < 0 {
		return 0
	}
	return s
}

// dateScore is 1 same-day and decays linearly to 0 at the window edge.
func dateScore(bank, manual time.Time, windowDays int) float64 {
	days := daysApart(bank, manual)
	if days >= windowDays {
		return 0
	}
	return 1 - float64(days)/float64(windowDays)
}

func daysApart(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(ad.Sub(bd).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// descriptionScore measures token overlap between the bank description and
// the manual entry's description plus reference, as the share of the
// smaller token set that appears in the other.
func descriptionScore(bankDesc, manualDesc, manualRef string) float64 {
	a := tokens(bankDesc)
	b := tokens(manualDesc + " " + manualRef)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	overlap := 0
	for tok := range smaller {
		if larger[tok] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(smaller))
}

// tokens lowercases and splits on non-alphanumeric runes, dropping
// single-character fragments.
func tokens(s string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			set[f] = true
		}
	}
	return set
}
