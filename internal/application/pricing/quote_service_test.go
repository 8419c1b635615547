package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRuleRepository is a mock implementation of pricing.RuleRepository
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) FindBySKU(ctx context.Context, sku string) (*pricing.PricingRule, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) FindAll(ctx context.Context) ([]pricing.PricingRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) Save(ctx context.Context, rule *pricing.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func espressoRule(t *testing.T) *pricing.PricingRule {
	t.Helper()
	rule, err := pricing.NewPricingRule("ESPRESSO_1", [pricing.TierCount]decimal.Decimal{
		decimal.NewFromInt(13020),
		decimal.NewFromInt(13020),
		decimal.NewFromInt(11718),
		decimal.NewFromInt(10850),
		decimal.NewFromInt(10416),
		decimal.NewFromInt(9765),
	})
	require.NoError(t, err)
	return rule
}

func tastingSetRule(t *testing.T) *pricing.PricingRule {
	t.Helper()
	rule, err := pricing.NewFixedPricingRule("TASTING_SET", decimal.NewFromInt(10000))
	require.NoError(t, err)
	return rule
}

func TestQuoteService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("prices a tiered position", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "ESPRESSO_1").Return(espressoRule(t), nil)
		svc := NewQuoteService(repo)

		resp, err := svc.Quote(ctx, QuoteRequest{SKU: "ESPRESSO_1", Quantity: decimal.NewFromInt(12)}, "ru")
		require.NoError(t, err)

		assert.Equal(t, "ESPRESSO_1", resp.SKU)
		assert.Equal(t, 3, resp.Tier)
		assert.True(t, resp.PricePerUnit.Equal(decimal.NewFromInt(11718)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(140616)))
		assert.Nil(t, resp.Upsell)
	})

	t.Run("attaches upsell hint near the next breakpoint", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "ESPRESSO_1").Return(espressoRule(t), nil)
		svc := NewQuoteService(repo)

		resp, err := svc.Quote(ctx, QuoteRequest{SKU: "ESPRESSO_1", Quantity: decimal.NewFromInt(8)}, "en")
		require.NoError(t, err)

		require.NotNil(t, resp.Upsell)
		assert.Equal(t, 3, resp.Upsell.NextTier)
		assert.True(t, resp.Upsell.Breakpoint.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.Upsell.Remaining.Equal(decimal.NewFromInt(2)))
		assert.True(t, resp.Upsell.NextPricePerUnit.Equal(decimal.NewFromInt(11718)))
		assert.Equal(t, "Add 2 kg more to get 11718 ₸/kg", resp.Upsell.Message)
	})

	t.Run("localizes the nudge in russian", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "ESPRESSO_1").Return(espressoRule(t), nil)
		svc := NewQuoteService(repo)

		resp, err := svc.Quote(ctx, QuoteRequest{SKU: "ESPRESSO_1", Quantity: decimal.NewFromInt(8)}, "ru")
		require.NoError(t, err)

		require.NotNil(t, resp.Upsell)
		assert.Equal(t, "Добавьте ещё 2 кг и цена станет 11718 ₸/кг", resp.Upsell.Message)
	})

	t.Run("fixed price position never upsells", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "TASTING_SET").Return(tastingSetRule(t), nil)
		svc := NewQuoteService(repo)

		resp, err := svc.Quote(ctx, QuoteRequest{SKU: "TASTING_SET", Quantity: decimal.NewFromInt(9)}, "ru")
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Tier)
		assert.True(t, resp.PricePerUnit.Equal(decimal.NewFromInt(10000)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(90000)))
		assert.Nil(t, resp.Upsell)
	})

	t.Run("unknown sku surfaces a typed error", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "NOPE").Return(nil, shared.ErrNotFound)
		svc := NewQuoteService(repo)

		_, err := svc.Quote(ctx, QuoteRequest{SKU: "NOPE", Quantity: decimal.NewFromInt(1)}, "ru")
		assert.ErrorIs(t, err, shared.ErrUnknownProduct)
	})
}

func TestQuoteService_TierTable(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the full ladder", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "ESPRESSO_1").Return(espressoRule(t), nil)
		svc := NewQuoteService(repo)

		resp, err := svc.TierTable(ctx, "ESPRESSO_1")
		require.NoError(t, err)

		assert.False(t, resp.Fixed)
		require.Len(t, resp.Tiers, 6)
		assert.True(t, resp.Tiers[0].Equal(decimal.NewFromInt(13020)))
		assert.True(t, resp.Tiers[5].Equal(decimal.NewFromInt(9765)))
	})

	t.Run("unknown sku surfaces a typed error", func(t *testing.T) {
		repo := new(MockRuleRepository)
		repo.On("FindBySKU", ctx, "NOPE").Return(nil, shared.ErrNotFound)
		svc := NewQuoteService(repo)

		_, err := svc.TierTable(ctx, "NOPE")
		assert.ErrorIs(t, err, shared.ErrUnknownProduct)
	})
}
