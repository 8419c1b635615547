package pricing

import "github.com/shopspring/decimal"

// TierRank is a discount bracket determined by order quantity.
// Rank 1 is the retail price; rank 6 is the deepest wholesale discount.
type TierRank int

const (
	// MinTier is the retail tier for small orders
	MinTier TierRank = 1
	// MaxTier is the deepest wholesale tier
	MaxTier TierRank = 6
	// TierCount is the number of discount tiers
	TierCount = int(MaxTier)
)

// tierBreakpoints are the lower bounds (kg) of tiers 2..6.
// Brackets are half-open and contiguous: <5→1, [5,10)→2, [10,30)→3,
// [30,50)→4, [50,100)→5, ≥100→6. Every quantity maps to exactly one tier.
var tierBreakpoints = []int64{5, 10, 30, 50, 100}

// IsValid returns true if the rank is within 1..6
func (t TierRank) IsValid() bool {
	return t >= MinTier && t <= MaxTier
}

// Next returns the next deeper tier, or (0, false) at the maximum tier
func (t TierRank) Next() (TierRank, bool) {
	if t >= MaxTier {
		return 0, false
	}
	return t + 1, true
}

// ResolveTier maps an order quantity in kilograms to its discount tier.
// Quantities below 1 kg resolve to the retail tier; the function is total
// and never fails.
func ResolveTier(quantity decimal.Decimal) TierRank {
	rank := MinTier
	for _, bp := range tierBreakpoints {
		if quantity.GreaterThanOrEqual(decimal.NewFromInt(bp)) {
			rank++
		}
	}
	return rank
}

// NextBreakpoint returns the quantity at which the next tier after rank
// begins. Returns false at the maximum tier, where no further discount exists.
func NextBreakpoint(rank TierRank) (decimal.Decimal, bool) {
	if rank < MinTier || rank >= MaxTier {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(tierBreakpoints[rank-1]), true
}
