package pricing

import (
	"context"
	"errors"

	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Quote is the result of pricing a (SKU, quantity) pair.
// PricePerUnit is whole tenge per kilogram; Total is rounded to the whole
// tenge so monetary amounts never carry fractions even when quantities do.
type Quote struct {
	SKU          string
	Quantity     decimal.Decimal
	Tier         TierRank
	PricePerUnit decimal.Decimal
	Total        decimal.Decimal
}

// RuleSource supplies pricing rules to the calculator.
// Satisfied by pricing.RuleRepository and by in-memory test fixtures.
type RuleSource interface {
	FindBySKU(ctx context.Context, sku string) (*PricingRule, error)
}

// Calculator prices order lines from the volume tier table.
// It is a stateless domain service: the same inputs against the same rule
// set always produce the same quote, on the client and on the server alike.
type Calculator struct {
	rules RuleSource
}

// NewCalculator creates a Calculator backed by the given rule source
func NewCalculator(rules RuleSource) *Calculator {
	return &Calculator{rules: rules}
}

// PriceForQuantity resolves the tier for the quantity and prices the line.
// Quantities below 1 kg are clamped to 1 kg. An unknown SKU surfaces as
// shared.ErrUnknownProduct rather than a zero price: a free line item is a
// correctness hazard, not a recoverable default.
func (c *Calculator) PriceForQuantity(ctx context.Context, sku string, quantity decimal.Decimal) (Quote, error) {
	rule, err := c.rules.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Quote{}, shared.ErrUnknownProduct
		}
		return Quote{}, err
	}

	if quantity.LessThan(one) {
		quantity = one
	}

	tier := ResolveTier(quantity)
	unit := rule.PriceForTier(tier)
	if rule.Fixed {
		tier = MinTier
		unit = rule.PriceForTier(MinTier)
	}

	return Quote{
		SKU:          rule.SKU,
		Quantity:     quantity,
		Tier:         tier,
		PricePerUnit: unit,
		Total:        unit.Mul(quantity).Round(0),
	}, nil
}

// PriceLine prices a quantity against an already loaded rule.
// Used by callers that batch-load rules and must not hit the source per line.
func PriceLine(rule *PricingRule, quantity decimal.Decimal) Quote {
	if quantity.LessThan(one) {
		quantity = one
	}
	tier := ResolveTier(quantity)
	if rule.Fixed {
		tier = MinTier
	}
	unit := rule.PriceForTier(tier)
	return Quote{
		SKU:          rule.SKU,
		Quantity:     quantity,
		Tier:         tier,
		PricePerUnit: unit,
		Total:        unit.Mul(quantity).Round(0),
	}
}
