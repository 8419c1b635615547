package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/catalog"
	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/i18n"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Checkout errors
var (
	ErrEmptyCart      = shared.NewDomainError("EMPTY_CART", "Cannot checkout an empty cart")
	ErrErpUnavailable = shared.NewDomainError("ERP_UNAVAILABLE", "Warehouse is temporarily unavailable, the order was saved and will be retried")
	ErrOrderRejected  = shared.NewDomainError("ORDER_REJECTED", "Warehouse rejected the order")
)

// CheckoutService turns a cart into a warehouse order.
// Every line is re-priced on the server before submission; client-displayed
// prices are advisory. A mismatch is recorded and the order proceeds at the
// server's prices.
type CheckoutService struct {
	carts      cart.Store
	orders     order.Repository
	products   catalog.ProductRepository
	calculator *pricing.Calculator
	erp        integration.ErpGateway
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	carts cart.Store,
	orders order.Repository,
	products catalog.ProductRepository,
	rules pricing.RuleRepository,
	erp integration.ErpGateway,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		orders:     orders,
		products:   products,
		calculator: pricing.NewCalculator(rules),
		erp:        erp,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// sourceLine is a (SKU, quantity) pair picked for checkout together with the
// price the shopper last saw for it
type sourceLine struct {
	sku       string
	name      string
	quantity  decimal.Decimal
	seenPrice decimal.Decimal
	seenTotal decimal.Decimal
}

// Checkout re-prices the cart, persists the order and pushes it to the
// warehouse. On success the cart is cleared.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest, customerID *uuid.UUID, locale string) (*OrderResponse, error) {
	lines, err := s.collectLines(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o, err := order.New(order.Contact{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Comment: req.Comment,
	}, locale)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		o.SetCustomer(*customerID)
	}

	adjusted := false
	for _, line := range lines {
		quote, err := s.calculator.PriceForQuantity(ctx, line.sku, line.quantity)
		if err != nil {
			return nil, err
		}

		if !line.seenPrice.IsZero() && !line.seenPrice.Equal(quote.PricePerUnit) {
			adjusted = true
			s.logger.Warn("checkout price revalidation mismatch",
				zap.String("order_number", o.Number),
				zap.String("sku", line.sku),
				zap.String("displayed_price", line.seenPrice.String()),
				zap.String("server_price", quote.PricePerUnit.String()))
		}

		name := line.name
		if name == "" {
			name, err = s.productName(ctx, quote.SKU, locale)
			if err != nil {
				return nil, err
			}
		}
		if err := o.AddItem(quote.SKU, name, quote.Quantity, quote.PricePerUnit); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.submit(ctx, o); err != nil {
		return nil, err
	}

	if err := s.carts.Delete(ctx, req.CartID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("cart_id", req.CartID.String()),
			zap.Error(err))
	}

	resp := ToOrderResponse(o)
	if adjusted {
		resp.PriceAdjusted = true
		resp.Notice = i18n.PriceAdjustedNotice(locale)
	}
	return &resp, nil
}

// Retry re-pushes a failed order to the warehouse
func (s *CheckoutService) Retry(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusFailed {
		return nil, shared.NewDomainError("INVALID_STATE", "Only failed orders can be retried")
	}

	if err := s.submit(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Get returns one order by its public number
func (s *CheckoutService) Get(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListForCustomer returns the customer's orders, newest first
func (s *CheckoutService) ListForCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) (*OrderListResponse, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := s.orders.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToOrderResponse(&result.Items[i]))
	}
	return &OrderListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// collectLines picks the lines to order. The server-side cart is
// authoritative; the client's submitted lines only fill in when the server
// never saw the cart, and are re-priced either way.
func (s *CheckoutService) collectLines(ctx context.Context, req CheckoutRequest) ([]sourceLine, error) {
	c, err := s.carts.Load(ctx, req.CartID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrCartCorrupted) {
			return nil, err
		}
		if errors.Is(err, shared.ErrCartCorrupted) {
			s.logger.Warn("checkout against corrupted cart snapshot",
				zap.String("cart_id", req.CartID.String()))
		}
		c = nil
	}

	if c != nil && !c.IsEmpty() {
		lines := make([]sourceLine, 0, len(c.Lines))
		for _, l := range c.Lines {
			lines = append(lines, sourceLine{
				sku:       l.SKU,
				name:      l.Name,
				quantity:  l.Quantity,
				seenPrice: l.PricePerUnit,
				seenTotal: l.Total,
			})
		}
		return lines, nil
	}

	lines := make([]sourceLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, sourceLine{
			sku:       l.SKU,
			quantity:  l.Quantity,
			seenPrice: l.PricePerUnit,
			seenTotal: l.Total,
		})
	}
	return lines, nil
}

// submit pushes the order to the warehouse and records the outcome
func (s *CheckoutService) submit(ctx context.Context, o *order.Order) error {
	result, err := s.erp.PushOrder(ctx, s.toErpRequest(o))
	if err != nil {
		s.logger.Error("warehouse push failed",
			zap.String("order_number", o.Number),
			zap.Error(err))
		if ferr := o.MarkFailed(err.Error()); ferr == nil {
			if serr := s.orders.Save(ctx, o); serr != nil {
				s.logger.Error("failed to persist failed order",
					zap.String("order_number", o.Number),
					zap.Error(serr))
			}
		}
		return ErrErpUnavailable
	}

	if !result.Accepted {
		s.logger.Warn("warehouse rejected order",
			zap.String("order_number", o.Number),
			zap.String("reason", result.Message))
		if ferr := o.MarkFailed(result.Message); ferr == nil {
			if serr := s.orders.Save(ctx, o); serr != nil {
				s.logger.Error("failed to persist rejected order",
					zap.String("order_number", o.Number),
					zap.Error(serr))
			}
		}
		return ErrOrderRejected
	}

	if err := o.MarkSubmitted(result.ErpOrderID); err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_number", o.Number),
			zap.Error(err))
	}
	o.ClearDomainEvents()
	return nil
}

func (s *CheckoutService) toErpRequest(o *order.Order) integration.OrderRequest {
	lines := make([]integration.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, integration.OrderLine{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity.Amount(),
			UnitPrice: item.UnitPrice.Amount(),
			Amount:    item.Amount.Amount(),
		})
	}
	return integration.OrderRequest{
		Number:        o.Number,
		CustomerName:  o.Contact.Name,
		CustomerPhone: o.Contact.Phone,
		CustomerEmail: o.Contact.Email,
		Address:       o.Contact.Address,
		Comment:       o.Contact.Comment,
		Lines:         lines,
		TotalAmount:   o.TotalAmount.Amount(),
	}
}

func (s *CheckoutService) productName(ctx context.Context, sku, locale string) (string, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrUnknownProduct
		}
		return "", err
	}
	return product.Name(locale), nil
}
