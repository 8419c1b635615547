package pricing

import "github.com/shopspring/decimal"

// upsellWindow is how close (in kg, exclusive) a quantity must be to the
// next tier breakpoint before a nudge is worth showing.
var upsellWindow = decimal.NewFromInt(3)

// Hint describes a nearby deeper discount tier.
// It is purely advisory and never alters pricing.
type Hint struct {
	CurrentTier TierRank
	NextTier    TierRank
	Breakpoint  decimal.Decimal // quantity (kg) at which NextTier begins
	Remaining   decimal.Decimal // kg left to add to reach Breakpoint
}

// Upsell returns a hint when the quantity is strictly within the look-back
// window below the next tier's breakpoint, and nil otherwise. At the maximum
// tier there is no next discount to recommend.
func Upsell(quantity decimal.Decimal) *Hint {
	current := ResolveTier(quantity)
	breakpoint, ok := NextBreakpoint(current)
	if !ok {
		return nil
	}

	remaining := breakpoint.Sub(quantity)
	if !remaining.IsPositive() || remaining.GreaterThanOrEqual(upsellWindow) {
		return nil
	}

	next, _ := current.Next()
	return &Hint{
		CurrentTier: current,
		NextTier:    next,
		Breakpoint:  breakpoint,
		Remaining:   remaining,
	}
}

// UpsellFor prices the hint against a concrete rule so callers can name the
// discounted per-kilogram price in the nudge. Fixed-price rules never upsell.
func UpsellFor(rule *PricingRule, quantity decimal.Decimal) (*Hint, decimal.Decimal) {
	if rule == nil || rule.Fixed {
		return nil, decimal.Zero
	}
	hint := Upsell(quantity)
	if hint == nil {
		return nil, decimal.Zero
	}
	return hint, rule.PriceForTier(hint.NextTier)
}
