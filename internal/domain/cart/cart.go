package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Line is one SKU's aggregated position within a cart.
// PricePerUnit is whole tenge per kilogram, derived from (SKU, Quantity) at
// the time of the last mutation; Total is always Quantity × PricePerUnit
// rounded to the whole tenge and is never mutated independently.
type Line struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
	Image        string          `json:"image"`
}

// Cart is an ordered collection of lines owned by one client session.
// Exactly one line exists per distinct SKU. The zero quantity is not
// representable: mutations clamp or reject it at the boundary.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`

	domainEvents []shared.DomainEvent
}

// New creates an empty cart for the given session
func New(id uuid.UUID) *Cart {
	return &Cart{
		ID:        id,
		Lines:     make([]Line, 0),
		UpdatedAt: time.Now(),
	}
}

// Line returns the line for the SKU, if present
func (c *Cart) Line(sku string) (Line, bool) {
	for _, l := range c.Lines {
		if l.SKU == sku {
			return l, true
		}
	}
	return Line{}, false
}

// PutLine inserts or replaces the line for line.SKU, keeping insertion order.
// The stored total is recomputed from quantity and unit price so the
// total-consistency invariant cannot be violated by a caller.
func (c *Cart) PutLine(line Line) error {
	if line.SKU == "" {
		return shared.NewDomainError("INVALID_SKU", "Cart line SKU cannot be empty")
	}
	if !line.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Cart line quantity must be positive")
	}
	if line.PricePerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cart line price cannot be negative")
	}

	line.Total = line.Quantity.Mul(line.PricePerUnit).Round(0)

	for i, existing := range c.Lines {
		if existing.SKU == line.SKU {
			c.Lines[i] = line
			c.touch(EventTypeCartLineUpdated, line.SKU)
			return nil
		}
	}
	c.Lines = append(c.Lines, line)
	c.touch(EventTypeCartLineAdded, line.SKU)
	return nil
}

// RemoveLine deletes the line for the SKU.
// Removing an absent SKU is a no-op, not an error.
func (c *Cart) RemoveLine(sku string) {
	for i, l := range c.Lines {
		if l.SKU == sku {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.touch(EventTypeCartLineRemoved, sku)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	if len(c.Lines) == 0 {
		return
	}
	c.Lines = c.Lines[:0]
	c.touch(EventTypeCartCleared, "")
}

// Total returns the sum of all line totals in whole tenge
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total)
	}
	return total
}

// Count returns the number of distinct lines, not the summed quantity
func (c *Cart) Count() int {
	return len(c.Lines)
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) touch(eventType, sku string) {
	c.UpdatedAt = time.Now()
	c.domainEvents = append(c.domainEvents, NewCartChangedEvent(eventType, c, sku))
}

// GetDomainEvents returns pending change notifications
func (c *Cart) GetDomainEvents() []shared.DomainEvent {
	return c.domainEvents
}

// ClearDomainEvents clears pending change notifications
func (c *Cart) ClearDomainEvents() {
	c.domainEvents = nil
}
