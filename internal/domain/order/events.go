package order

import (
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// EventTypeOrderSubmitted is published when the ERP accepts an order
	EventTypeOrderSubmitted = "order.submitted"
)

// OrderSubmittedEvent carries the facts downstream consumers need
// without re-reading the aggregate
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	Number      string          `json:"number"`
	ErpOrderID  string          `json:"erp_order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderSubmittedEvent creates an order submitted event
func NewOrderSubmittedEvent(o *Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmitted, "Order", o.ID),
		Number:          o.Number,
		ErpOrderID:      o.ErpOrderID,
		TotalAmount:     o.TotalAmount.Amount(),
		ItemCount:       len(o.Items),
	}
}
