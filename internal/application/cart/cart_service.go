package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/catalog"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService orchestrates cart mutations.
// Every mutation re-prices the affected line from the merged quantity, so a
// SKU added twice is one line priced at the tier of the whole quantity, never
// two lines at shallower tiers.
type CartService struct {
	store      cart.Store
	products   catalog.ProductRepository
	rules      pricing.RuleRepository
	calculator *pricing.Calculator
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	store cart.Store,
	products catalog.ProductRepository,
	rules pricing.RuleRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		store:      store,
		products:   products,
		rules:      rules,
		calculator: pricing.NewCalculator(rules),
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Get returns the cart, rendering an empty cart for unknown or unreadable
// snapshots.
func (s *CartService) Get(ctx context.Context, cartID uuid.UUID, locale string) (*CartResponse, error) {
	c, err := s.loadOrEmpty(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, c, locale), nil
}

// AddItem adds a position to the cart. When the SKU is already present the
// quantities merge into one line and the whole merged quantity is re-priced.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddItemRequest, locale string) (*CartResponse, error) {
	c, err := s.loadOrEmpty(ctx, cartID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if existing, ok := c.Line(req.SKU); ok {
		quantity = existing.Quantity.Add(req.Quantity)
	}

	if err := s.putPricedLine(ctx, c, req.SKU, quantity, locale); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c, locale), nil
}

// SetQuantity sets the absolute quantity for a line, re-pricing it at the new
// tier. Quantities below 1 kg clamp to 1 kg. Setting a SKU the cart does not
// hold behaves like adding it.
func (s *CartService) SetQuantity(ctx context.Context, cartID uuid.UUID, sku string, req SetQuantityRequest, locale string) (*CartResponse, error) {
	c, err := s.loadOrEmpty(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := s.putPricedLine(ctx, c, sku, req.Quantity, locale); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c, locale), nil
}

// RemoveItem deletes a line. Removing an absent SKU is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, sku, locale string) (*CartResponse, error) {
	c, err := s.loadOrEmpty(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveLine(sku)
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c, locale), nil
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, cartID uuid.UUID, locale string) (*CartResponse, error) {
	c, err := s.loadOrEmpty(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return s.render(ctx, c, locale), nil
}

// loadOrEmpty loads the cart, degrading an unknown or corrupted snapshot to
// an empty cart. Corruption is logged so it is visible in operations without
// ever failing the shopper's session.
func (s *CartService) loadOrEmpty(ctx context.Context, cartID uuid.UUID) (*cart.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return cart.New(cartID), nil
	}
	if errors.Is(err, shared.ErrCartCorrupted) {
		s.logger.Warn("discarding corrupted cart snapshot",
			zap.String("cart_id", cartID.String()))
		return cart.New(cartID), nil
	}
	return nil, err
}

// putPricedLine prices the absolute quantity for the SKU and upserts the
// resulting line. Unknown SKUs never enter the cart.
func (s *CartService) putPricedLine(ctx context.Context, c *cart.Cart, sku string, quantity decimal.Decimal, locale string) error {
	quote, err := s.calculator.PriceForQuantity(ctx, sku, quantity)
	if err != nil {
		return err
	}

	line := cart.Line{
		SKU:          quote.SKU,
		Quantity:     quote.Quantity,
		PricePerUnit: quote.PricePerUnit,
	}

	if existing, ok := c.Line(quote.SKU); ok {
		line.Name = existing.Name
		line.Slug = existing.Slug
		line.Image = existing.Image
	} else {
		product, err := s.products.FindBySKU(ctx, quote.SKU)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrUnknownProduct
			}
			return err
		}
		line.Name = product.Name(locale)
		line.Slug = product.Slug
		line.Image = product.Image
	}

	return c.PutLine(line)
}

// persist saves the cart and publishes its pending change events.
// Event delivery failures are logged, not surfaced: the cart state is
// already durable.
func (s *CartService) persist(ctx context.Context, c *cart.Cart) error {
	if err := s.store.Save(ctx, c); err != nil {
		return err
	}
	for _, event := range c.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish cart event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	c.ClearDomainEvents()
	return nil
}

// render builds the API projection, attaching upsell nudges per line.
// A missing rule for a rendered line yields no nudge rather than an error.
func (s *CartService) render(ctx context.Context, c *cart.Cart, locale string) *CartResponse {
	lines := make([]LineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		rule, err := s.rules.FindBySKU(ctx, l.SKU)
		if err != nil {
			rule = nil
		}
		lines = append(lines, toLineResponse(l, rule, locale))
	}
	return &CartResponse{
		ID:        c.ID,
		Lines:     lines,
		Total:     c.Total(),
		Count:     c.Count(),
		UpdatedAt: c.UpdatedAt,
	}
}
