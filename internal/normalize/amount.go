package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols are stripped from amount fields before parsing.
const currencySymbols = "£$€¥"

// cleanAmount parses a bank-export amount field. It tolerates a currency
// symbol ("£1,500.00"), a leading 3-letter currency code ("GBP 500.00"), and
// comma grouping separators. Anything else that is not a decimal number is
// an error.
func cleanAmount(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)

	if len(v) >= 3 && isAlpha(v[:3]) {
		v = strings.TrimSpace(v[3:])
	}

	v = strings.Map(func(r rune) rune {
		switch {
		case r == ',':
			return -1
		case strings.ContainsRune(currencySymbols, r):
			return -1
		}
		return r
	}, v)

	return decimal.NewFromString(strings.TrimSpace(v))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || (r > 'Z' && r < 'a') || r > 'z' {
			return false
		}
	}
	return true
}
