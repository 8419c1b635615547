package pricing

import (
	"context"
	"strings"
	"testing"

	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapRuleSource is an in-memory RuleSource for calculator tests
type mapRuleSource map[string]*PricingRule

func (m mapRuleSource) FindBySKU(_ context.Context, sku string) (*PricingRule, error) {
	rule, ok := m[strings.ToUpper(sku)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return rule, nil
}

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()

	espresso, err := NewPricingRule("ESPRESSO_1", espressoTiers())
	require.NoError(t, err)
	tasting, err := NewFixedPricingRule("TASTING_SET", decimal.NewFromInt(10000))
	require.NoError(t, err)

	return NewCalculator(mapRuleSource{
		espresso.SKU: espresso,
		tasting.SKU:  tasting,
	})
}

func TestCalculator_PriceForQuantity(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator(t)

	t.Run("prices 9kg at the retail rate", func(t *testing.T) {
		quote, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromInt(9))
		require.NoError(t, err)
		assert.True(t, quote.PricePerUnit.Equal(decimal.NewFromInt(13020)))
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(117180)))
	})

	t.Run("re-tiers 10kg to the wholesale rate", func(t *testing.T) {
		quote, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, TierRank(3), quote.Tier)
		assert.True(t, quote.PricePerUnit.Equal(decimal.NewFromInt(11718)))
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(117180)))
	})

	t.Run("rounds fractional totals to the whole tenge", func(t *testing.T) {
		quote, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromFloat(1.5))
		require.NoError(t, err)
		// 1.5 * 13020 = 19530, already whole; 2.25 * 13020 = 29295
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(19530)))

		quote, err = calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromFloat(2.33))
		require.NoError(t, err)
		assert.True(t, quote.Total.Equal(quote.Total.Round(0)), "total must not carry fractional tenge")
	})

	t.Run("clamps quantities below 1kg", func(t *testing.T) {
		quote, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromFloat(0.2))
		require.NoError(t, err)
		assert.True(t, quote.Quantity.Equal(decimal.NewFromInt(1)))
		assert.True(t, quote.Total.Equal(decimal.NewFromInt(13020)))
	})

	t.Run("fixed-price SKU ignores tiering", func(t *testing.T) {
		one, err := calc.PriceForQuantity(ctx, "TASTING_SET", decimal.NewFromInt(1))
		require.NoError(t, err)
		five, err := calc.PriceForQuantity(ctx, "TASTING_SET", decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.True(t, one.PricePerUnit.Equal(decimal.NewFromInt(10000)))
		assert.True(t, five.PricePerUnit.Equal(decimal.NewFromInt(10000)), "price must not change at volume")
	})

	t.Run("unknown SKU is a typed error, never a free item", func(t *testing.T) {
		_, err := calc.PriceForQuantity(ctx, "GHOST_BLEND", decimal.NewFromInt(2))
		require.ErrorIs(t, err, shared.ErrUnknownProduct)
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		first, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		second, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestCalculator_UnitPriceNeverIncreasesWithVolume(t *testing.T) {
	ctx := context.Background()
	calc := newTestCalculator(t)

	prev := decimal.Zero
	for q := int64(1); q <= 150; q++ {
		quote, err := calc.PriceForQuantity(ctx, "ESPRESSO_1", decimal.NewFromInt(q))
		require.NoError(t, err)
		if q > 1 {
			require.True(t, quote.PricePerUnit.LessThanOrEqual(prev),
				"unit price rose from %s to %s at %dkg", prev, quote.PricePerUnit, q)
		}
		prev = quote.PricePerUnit
	}
}

func TestPriceLine(t *testing.T) {
	rule, err := NewPricingRule("ESPRESSO_1", espressoTiers())
	require.NoError(t, err)

	quote := PriceLine(rule, decimal.NewFromInt(30))
	assert.Equal(t, TierRank(4), quote.Tier)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(325500)))
}
