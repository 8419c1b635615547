package order

import (
	"context"
	"fmt"

	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockRefreshHandler reacts to submitted orders by asking the warehouse
// for fresh stock levels, so low stock shows up in the logs right after
// the sale that caused it.
type StockRefreshHandler struct {
	orders       order.Repository
	erp          integration.ErpGateway
	lowThreshold decimal.Decimal
	logger       *zap.Logger
}

// NewStockRefreshHandler creates a new handler for order submitted events
func NewStockRefreshHandler(
	orders order.Repository,
	erp integration.ErpGateway,
	logger *zap.Logger,
) *StockRefreshHandler {
	return &StockRefreshHandler{
		orders:       orders,
		erp:          erp,
		lowThreshold: decimal.NewFromInt(25),
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StockRefreshHandler) EventTypes() []string {
	return []string{order.EventTypeOrderSubmitted}
}

// Handle processes an OrderSubmittedEvent
func (h *StockRefreshHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	submitted, ok := event.(*order.OrderSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderSubmitted, event.EventType())
	}

	o, err := h.orders.FindByID(ctx, event.AggregateID())
	if err != nil {
		return fmt.Errorf("load order %s: %w", submitted.Number, err)
	}

	skus := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		skus = append(skus, item.SKU)
	}

	levels, err := h.erp.FetchStock(ctx, skus)
	if err != nil {
		h.logger.Warn("stock refresh after order submit failed",
			zap.String("order_number", submitted.Number),
			zap.Error(err),
		)
		return err
	}

	for _, level := range levels {
		if level.Quantity.LessThan(h.lowThreshold) {
			h.logger.Warn("stock running low",
				zap.String("sku", level.SKU),
				zap.String("remaining_kg", level.Quantity.String()),
			)
		}
	}
	return nil
}

var _ shared.EventHandler = (*StockRefreshHandler)(nil)
