package pricing

import (
	"context"
	"errors"

	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/i18n"
)

// QuoteService prices single positions and computes upsell hints.
// It is the one authority both the product page and checkout revalidation
// go through, so client and server totals can never disagree.
type QuoteService struct {
	rules      pricing.RuleRepository
	calculator *pricing.Calculator
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(rules pricing.RuleRepository) *QuoteService {
	return &QuoteService{
		rules:      rules,
		calculator: pricing.NewCalculator(rules),
	}
}

// Quote prices a (SKU, quantity) pair and attaches an upsell hint when the
// quantity sits just below the next tier breakpoint.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest, locale string) (*QuoteResponse, error) {
	quote, err := s.calculator.PriceForQuantity(ctx, req.SKU, req.Quantity)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{
		SKU:          quote.SKU,
		Quantity:     quote.Quantity,
		Tier:         int(quote.Tier),
		PricePerUnit: quote.PricePerUnit,
		Total:        quote.Total,
	}

	rule, err := s.rules.FindBySKU(ctx, quote.SKU)
	if err != nil {
		return nil, err
	}
	if hint, nextPrice := pricing.UpsellFor(rule, quote.Quantity); hint != nil {
		resp.Upsell = &UpsellResponse{
			NextTier:         int(hint.NextTier),
			Breakpoint:       hint.Breakpoint,
			Remaining:        hint.Remaining,
			NextPricePerUnit: nextPrice,
			Message:          i18n.UpsellNudge(locale, hint.Remaining, nextPrice),
		}
	}

	return resp, nil
}

// TierTable returns the per-tier unit prices for a SKU
func (s *QuoteService) TierTable(ctx context.Context, sku string) (*TierTableResponse, error) {
	rule, err := s.rules.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnknownProduct
		}
		return nil, err
	}

	resp := &TierTableResponse{
		SKU:   rule.SKU,
		Fixed: rule.Fixed,
	}
	for rank := pricing.MinTier; rank <= pricing.MaxTier; rank++ {
		resp.Tiers = append(resp.Tiers, rule.PriceForTier(rank))
	}
	return resp, nil
}
