package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/i18n"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a position to the cart
type AddItemRequest struct {
	SKU      string          `json:"sku" binding:"required,min=1,max=50"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// SetQuantityRequest represents a request to set a line's quantity.
// Values below the one kilogram minimum are clamped rather than rejected.
type SetQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// LineUpsell is the per-line volume discount nudge
type LineUpsell struct {
	NextTier         int             `json:"next_tier"`
	Remaining        decimal.Decimal `json:"remaining"`
	NextPricePerUnit decimal.Decimal `json:"next_price_per_unit"`
	Message          string          `json:"message"`
}

// LineResponse represents one cart line in API responses
type LineResponse struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image"`
	Quantity     decimal.Decimal `json:"quantity"`
	Tier         int             `json:"tier"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
	Upsell       *LineUpsell     `json:"upsell,omitempty"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID        uuid.UUID       `json:"id"`
	Lines     []LineResponse  `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// toLineResponse renders a cart line, attaching an upsell nudge when the
// line's rule has a nearby deeper tier
func toLineResponse(l cart.Line, rule *pricing.PricingRule, locale string) LineResponse {
	tier := pricing.ResolveTier(l.Quantity)
	if rule != nil && rule.Fixed {
		tier = pricing.MinTier
	}
	resp := LineResponse{
		SKU:          l.SKU,
		Name:         l.Name,
		Slug:         l.Slug,
		Image:        l.Image,
		Quantity:     l.Quantity,
		Tier:         int(tier),
		PricePerUnit: l.PricePerUnit,
		Total:        l.Total,
	}
	if hint, nextPrice := pricing.UpsellFor(rule, l.Quantity); hint != nil {
		resp.Upsell = &LineUpsell{
			NextTier:         int(hint.NextTier),
			Remaining:        hint.Remaining,
			NextPricePerUnit: nextPrice,
			Message:          i18n.UpsellNudge(locale, hint.Remaining, nextPrice),
		}
	}
	return resp
}
