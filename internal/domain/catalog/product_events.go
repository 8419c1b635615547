package catalog

import "github.com/roastline/storefront/internal/domain/shared"

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product_created"
)

// ProductCreatedEvent is published when a product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Slug string `json:"slug"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		SKU:             p.SKU,
		Slug:            p.Slug,
	}
}
