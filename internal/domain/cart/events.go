package cart

import (
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart change event types. Any interested layer (HTTP push, logging,
// analytics) subscribes to these instead of polling cart state.
const (
	EventTypeCartLineAdded   = "cart.line_added"
	EventTypeCartLineUpdated = "cart.line_updated"
	EventTypeCartLineRemoved = "cart.line_removed"
	EventTypeCartCleared     = "cart.cleared"
)

// CartChangedEvent is emitted after every cart mutation
type CartChangedEvent struct {
	shared.BaseDomainEvent
	SKU       string          `json:"sku,omitempty"`
	LineCount int             `json:"line_count"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

// NewCartChangedEvent creates a change notification carrying the post-mutation
// aggregates a subscriber most often needs
func NewCartChangedEvent(eventType string, c *Cart, sku string) *CartChangedEvent {
	return &CartChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Cart", c.ID),
		SKU:             sku,
		LineCount:       len(c.Lines),
		CartTotal:       c.Total(),
	}
}
