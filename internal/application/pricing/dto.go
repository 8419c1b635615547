package pricing

import (
	"github.com/shopspring/decimal"
)

// QuoteRequest represents a request to price a single position
type QuoteRequest struct {
	SKU      string          `json:"sku" binding:"required,min=1,max=50"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// UpsellResponse describes a nearby deeper discount tier
type UpsellResponse struct {
	NextTier         int             `json:"next_tier"`
	Breakpoint       decimal.Decimal `json:"breakpoint"`
	Remaining        decimal.Decimal `json:"remaining"`
	NextPricePerUnit decimal.Decimal `json:"next_price_per_unit"`
	Message          string          `json:"message"`
}

// QuoteResponse represents a priced position in API responses
type QuoteResponse struct {
	SKU          string          `json:"sku"`
	Quantity     decimal.Decimal `json:"quantity"`
	Tier         int             `json:"tier"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
	Upsell       *UpsellResponse `json:"upsell,omitempty"`
}

// TierTableResponse exposes the full tier table for one SKU so the
// frontend can render the volume discount ladder on the product page
type TierTableResponse struct {
	SKU   string            `json:"sku"`
	Fixed bool              `json:"fixed"`
	Tiers []decimal.Decimal `json:"tiers"`
}
