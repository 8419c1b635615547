package pricing

import (
	"strings"
	"time"

	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingRule is the aggregate root for a product's volume price table.
// A rule is either tiered (six per-kilogram prices keyed by TierRank) or
// fixed (one constant price regardless of quantity, used for bundled sets).
type PricingRule struct {
	shared.BaseAggregateRoot
	SKU   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Fixed bool            `gorm:"not null;default:false"`
	Tier1 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tier2 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tier3 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tier4 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tier5 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Tier6 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// NewPricingRule creates a tiered pricing rule. Prices are whole tenge per
// kilogram, ordered from retail (tier 1) to deepest discount (tier 6).
func NewPricingRule(sku string, tiers [TierCount]decimal.Decimal) (*PricingRule, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}

	return &PricingRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Tier1:             tiers[0],
		Tier2:             tiers[1],
		Tier3:             tiers[2],
		Tier4:             tiers[3],
		Tier5:             tiers[4],
		Tier6:             tiers[5],
	}, nil
}

// NewFixedPricingRule creates a rule that ignores volume tiering and prices
// every unit at the given constant amount
func NewFixedPricingRule(sku string, price decimal.Decimal) (*PricingRule, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Fixed price must be positive")
	}

	rule := &PricingRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Fixed:             true,
	}
	// A fixed rule stores its price in every tier slot so PriceForTier is
	// total for any valid rank.
	rule.Tier1, rule.Tier2, rule.Tier3 = price, price, price
	rule.Tier4, rule.Tier5, rule.Tier6 = price, price, price
	return rule, nil
}

// PriceForTier returns the per-kilogram price for the given rank.
// Out-of-range ranks clamp to the nearest valid tier.
func (r *PricingRule) PriceForTier(rank TierRank) decimal.Decimal {
	if rank < MinTier {
		rank = MinTier
	}
	if rank > MaxTier {
		rank = MaxTier
	}
	return r.tiers()[rank-1]
}

// UpdateTiers replaces the price table, re-checking the monotonicity invariant
func (r *PricingRule) UpdateTiers(tiers [TierCount]decimal.Decimal) error {
	if r.Fixed {
		return shared.NewDomainError("INVALID_STATE", "Cannot set tier prices on a fixed-price rule")
	}
	if err := validateTiers(tiers); err != nil {
		return err
	}

	r.Tier1, r.Tier2, r.Tier3 = tiers[0], tiers[1], tiers[2]
	r.Tier4, r.Tier5, r.Tier6 = tiers[3], tiers[4], tiers[5]
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Validate re-checks the aggregate invariants. Called after loading rules
// from storage, where a bad manual edit could otherwise slip through.
func (r *PricingRule) Validate() error {
	if err := validateSKU(r.SKU); err != nil {
		return err
	}
	return validateTiers(r.tiers())
}

func (r *PricingRule) tiers() [TierCount]decimal.Decimal {
	return [TierCount]decimal.Decimal{r.Tier1, r.Tier2, r.Tier3, r.Tier4, r.Tier5, r.Tier6}
}

// validateTiers enforces the core invariant: prices are positive and
// non-increasing as the tier rank grows; more volume never costs more
// per kilogram.
func validateTiers(tiers [TierCount]decimal.Decimal) error {
	for i, price := range tiers {
		if !price.IsPositive() {
			return shared.NewDomainError("INVALID_PRICE", "Tier prices must be positive")
		}
		if i > 0 && price.GreaterThan(tiers[i-1]) {
			return shared.NewDomainError("INVALID_TIERS", "Per-unit price cannot increase with volume")
		}
	}
	return nil
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
