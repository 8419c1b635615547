package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/catalog"
	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/infrastructure/cartstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[order.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockRuleRepository is a mock implementation of pricing.RuleRepository
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) FindBySKU(ctx context.Context, sku string) (*pricing.PricingRule, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) FindAll(ctx context.Context) ([]pricing.PricingRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]pricing.PricingRule), args.Error(1)
}

func (m *MockRuleRepository) Save(ctx context.Context, rule *pricing.PricingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockErpGateway is a mock implementation of integration.ErpGateway
type MockErpGateway struct {
	mock.Mock
}

func (m *MockErpGateway) PushOrder(ctx context.Context, req integration.OrderRequest) (*integration.OrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.OrderResult), args.Error(1)
}

func (m *MockErpGateway) FetchStock(ctx context.Context, skus []string) ([]integration.StockLevel, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).([]integration.StockLevel), args.Error(1)
}

func (m *MockErpGateway) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// nopPublisher drops all events
type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error { return nil }

type fixture struct {
	svc    *CheckoutService
	carts  *cartstore.MemoryStore
	orders *MockOrderRepository
	erp    *MockErpGateway
	cartID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	rules := new(MockRuleRepository)
	espresso, err := pricing.NewPricingRule("ESPRESSO_1", [pricing.TierCount]decimal.Decimal{
		decimal.NewFromInt(13020),
		decimal.NewFromInt(13020),
		decimal.NewFromInt(11718),
		decimal.NewFromInt(10850),
		decimal.NewFromInt(10416),
		decimal.NewFromInt(9765),
	})
	require.NoError(t, err)
	rules.On("FindBySKU", mock.Anything, "ESPRESSO_1").Return(espresso, nil)
	rules.On("FindBySKU", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	products := new(MockProductRepository)
	espressoProduct, err := catalog.NewProduct("ESPRESSO_1", "espresso-blend-1", "Эспрессо-смесь №1", "Espresso Blend No. 1")
	require.NoError(t, err)
	products.On("FindBySKU", mock.Anything, "ESPRESSO_1").Return(espressoProduct, nil)

	orders := new(MockOrderRepository)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

	erp := new(MockErpGateway)
	carts := cartstore.NewMemoryStore()

	return &fixture{
		svc:    NewCheckoutService(carts, orders, products, rules, erp, nopPublisher{}, zap.NewNop()),
		carts:  carts,
		orders: orders,
		erp:    erp,
		cartID: uuid.New(),
	}
}

func (f *fixture) seedCart(t *testing.T, quantity, unitPrice int64) {
	t.Helper()
	c := cart.New(f.cartID)
	require.NoError(t, c.PutLine(cart.Line{
		SKU:          "ESPRESSO_1",
		Name:         "Эспрессо-смесь №1",
		Slug:         "espresso-blend-1",
		Quantity:     decimal.NewFromInt(quantity),
		PricePerUnit: decimal.NewFromInt(unitPrice),
	}))
	require.NoError(t, f.carts.Save(context.Background(), c))
}

func checkoutRequest(cartID uuid.UUID) CheckoutRequest {
	return CheckoutRequest{
		CartID: cartID,
		Name:   "Asel Nurlanova",
		Phone:  "+77011234567",
		Email:  "asel@example.kz",
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("submits a repriced order and clears the cart", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t, 12, 11718)
		f.erp.On("PushOrder", mock.Anything, mock.MatchedBy(func(req integration.OrderRequest) bool {
			return len(req.Lines) == 1 && req.TotalAmount.Equal(decimal.NewFromInt(140616))
		})).Return(&integration.OrderResult{ErpOrderID: "ms-001", Accepted: true}, nil)

		resp, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), nil, "ru")
		require.NoError(t, err)

		assert.Equal(t, string(order.StatusSubmitted), resp.Status)
		assert.False(t, resp.PriceAdjusted)
		assert.NotNil(t, resp.SubmittedAt)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].PricePerUnit.Equal(decimal.NewFromInt(11718)))

		_, err = f.carts.Load(ctx, f.cartID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.erp.AssertExpectations(t)
	})

	t.Run("stale displayed price is flagged and the server price wins", func(t *testing.T) {
		f := newFixture(t)
		// cart snapshot carries an outdated unit price for 12 kg
		f.seedCart(t, 12, 12500)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(&integration.OrderResult{ErpOrderID: "ms-002", Accepted: true}, nil)

		resp, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), nil, "ru")
		require.NoError(t, err)

		assert.True(t, resp.PriceAdjusted)
		assert.Equal(t, "Цены обновлены по актуальному прайс-листу", resp.Notice)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].PricePerUnit.Equal(decimal.NewFromInt(11718)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(140616)))
	})

	t.Run("empty cart cannot be checked out", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), nil, "ru")
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("client lines fill in when the server cart is gone", func(t *testing.T) {
		f := newFixture(t)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(&integration.OrderResult{ErpOrderID: "ms-003", Accepted: true}, nil)

		req := checkoutRequest(f.cartID)
		req.Lines = []CheckoutLine{{SKU: "ESPRESSO_1", Quantity: decimal.NewFromInt(5)}}

		resp, err := f.svc.Checkout(ctx, req, nil, "en")
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Espresso Blend No. 1", resp.Items[0].Name)
		assert.True(t, resp.Items[0].PricePerUnit.Equal(decimal.NewFromInt(13020)))
	})

	t.Run("erp outage marks the order failed and keeps the cart", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t, 5, 13020)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		_, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), nil, "ru")
		assert.ErrorIs(t, err, ErrErpUnavailable)

		// cart survives so the shopper can retry
		c, err := f.carts.Load(ctx, f.cartID)
		require.NoError(t, err)
		assert.Len(t, c.Lines, 1)

		// order persisted twice: pending, then failed
		f.orders.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("erp rejection surfaces a typed error", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t, 5, 13020)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(&integration.OrderResult{Accepted: false, Message: "organization not found"}, nil)

		_, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), nil, "ru")
		assert.ErrorIs(t, err, ErrOrderRejected)
	})

	t.Run("authenticated checkout links the customer", func(t *testing.T) {
		f := newFixture(t)
		f.seedCart(t, 5, 13020)
		customerID := uuid.New()
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(&integration.OrderResult{ErpOrderID: "ms-004", Accepted: true}, nil)

		var saved *order.Order
		f.orders.ExpectedCalls = nil
		f.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Order) }).
			Return(nil)

		_, err := f.svc.Checkout(ctx, checkoutRequest(f.cartID), &customerID, "ru")
		require.NoError(t, err)

		require.NotNil(t, saved)
		require.NotNil(t, saved.CustomerID)
		assert.Equal(t, customerID, *saved.CustomerID)
	})
}

func TestCheckoutService_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("failed order can be retried", func(t *testing.T) {
		f := newFixture(t)

		o, err := order.New(order.Contact{Name: "Asel Nurlanova", Phone: "+77011234567"}, "ru")
		require.NoError(t, err)
		require.NoError(t, o.AddItem("ESPRESSO_1", "Эспрессо-смесь №1", decimal.NewFromInt(5), decimal.NewFromInt(13020)))
		require.NoError(t, o.MarkFailed("warehouse down"))

		f.orders.On("FindByNumber", ctx, o.Number).Return(o, nil)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).
			Return(&integration.OrderResult{ErpOrderID: "ms-005", Accepted: true}, nil)

		resp, err := f.svc.Retry(ctx, o.Number)
		require.NoError(t, err)

		assert.Equal(t, string(order.StatusSubmitted), resp.Status)
	})

	t.Run("submitted order cannot be retried", func(t *testing.T) {
		f := newFixture(t)

		o, err := order.New(order.Contact{Name: "Asel Nurlanova", Phone: "+77011234567"}, "ru")
		require.NoError(t, err)
		require.NoError(t, o.AddItem("ESPRESSO_1", "Эспрессо-смесь №1", decimal.NewFromInt(5), decimal.NewFromInt(13020)))
		require.NoError(t, o.MarkSubmitted("ms-006"))

		f.orders.On("FindByNumber", ctx, o.Number).Return(o, nil)

		_, err = f.svc.Retry(ctx, o.Number)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestCheckoutService_ListForCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the customer's page", func(t *testing.T) {
		f := newFixture(t)
		customerID := uuid.New()

		o, err := order.New(order.Contact{Name: "Asel Nurlanova", Phone: "+77011234567"}, "ru")
		require.NoError(t, err)
		require.NoError(t, o.AddItem("ESPRESSO_1", "Эспрессо-смесь №1", decimal.NewFromInt(5), decimal.NewFromInt(13020)))

		page := shared.NewPaginated([]order.Order{*o}, 1, 1, 20)
		f.orders.On("FindByCustomer", ctx, customerID, mock.Anything).Return(&page, nil)

		resp, err := f.svc.ListForCustomer(ctx, customerID, 1, 20)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, o.Number, resp.Items[0].Number)
		assert.Equal(t, int64(1), resp.Total)
	})
}
