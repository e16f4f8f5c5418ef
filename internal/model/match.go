package model

import "time"

// Tier is the coarse confidence bucket of a reconciliation match.
type Tier string

const (
	TierExact    Tier = "exact"
	TierLikely   Tier = "likely"
	TierPossible Tier = "possible"
)

// TierBounds holds the inclusive lower confidence bound per tier.
type TierBounds struct {
	Exact    float64
	Likely   float64
	Possible float64
}

// DefaultTierBounds is the starting calibration for tier assignment.
func DefaultTierBounds() TierBounds {
	return TierBounds{Exact: 0.95, Likely: 0.70, Possible: 0.40}
}

// TierFor assigns a tier by checking the ordered bounds top-down.
// ok is false when confidence falls below the lowest retained band.
func TierFor(confidence float64, b TierBounds) (tier Tier, ok bool) {
	bounds := []struct {
		tier Tier
		min  float64
	}{
		{TierExact, b.Exact},
		{TierLikely, b.Likely},
		{TierPossible, b.Possible},
	}
	for _, tb := range bounds {
		if confidence >= tb.min {
			return tb.tier, true
		}
	}
	return "", false
}

// MatchStatus is the resolution state of a reconciliation match.
type MatchStatus string

const (
	MatchUnresolved MatchStatus = "unresolved"
	MatchConfirmed  MatchStatus = "confirmed"
	MatchDismissed  MatchStatus = "dismissed"
)

// ReconciliationMatch is a scored, user-resolvable proposed link between a
// bank transaction and a manually entered ledger row. Identity is
// (BankTransactionID, ManualEntryID, ManualEntryKind).
type ReconciliationMatch struct {
	ID                string
	BusinessID        string
	BankTransactionID string
	ManualEntryID     string
	ManualEntryKind   EntryKind

	Confidence float64 // in [0,1]
	Tier       Tier

	Status     MatchStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy string
}
