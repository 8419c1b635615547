package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cartapp "github.com/roastline/storefront/internal/application/cart"
	orderapp "github.com/roastline/storefront/internal/application/order"
	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/infrastructure/cartstore"
	"github.com/roastline/storefront/internal/infrastructure/event"
	"github.com/roastline/storefront/internal/interfaces/http/dto"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
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

type orderHandlerFixture struct {
	engine *gin.Engine
	store  *cartstore.MemoryStore
	orders *MockOrderRepository
	erp    *MockErpGateway
	cartID uuid.UUID
}

func newOrderHandlerFixture(t *testing.T) *orderHandlerFixture {
	t.Helper()

	store := cartstore.NewMemoryStore()
	rules := new(MockRuleRepository)
	rules.On("FindBySKU", mock.Anything, "ESPRESSO_1").Return(espressoRule(t), nil)
	products := new(MockProductRepository)
	products.On("FindBySKU", mock.Anything, "ESPRESSO_1").Return(espressoProduct(t), nil)
	orders := new(MockOrderRepository)
	erp := new(MockErpGateway)

	bus := event.NewInMemoryEventBus(zap.NewNop())
	cartService := cartapp.NewCartService(store, products, rules, bus, zap.NewNop())
	checkoutService := orderapp.NewCheckoutService(store, orders, products, rules, erp, bus, zap.NewNop())
	h := NewOrderHandler(checkoutService)

	engine := gin.New()
	engine.Use(middleware.Locale(), middleware.CartID())
	group := engine.Group("/api/v1/orders")
	group.POST("/checkout", h.Checkout)
	group.GET("/:number", h.Get)
	group.POST("/:number/retry", h.Retry)

	f := &orderHandlerFixture{engine: engine, store: store, orders: orders, erp: erp, cartID: uuid.New()}

	// seed the cart through the application layer so lines carry prices
	_, err := cartService.AddItem(context.Background(), f.cartID, cartapp.AddItemRequest{
		SKU:      "ESPRESSO_1",
		Quantity: decimal.RequireFromString("12"),
	}, "ru")
	require.NoError(t, err)

	return f
}

func (f *orderHandlerFixture) checkout(t *testing.T, req orderapp.CheckoutRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", bytes.NewBuffer(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(middleware.CartIDHeader, f.cartID.String())
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, r)
	return w
}

func TestOrderHandler_Checkout(t *testing.T) {
	t.Run("submits the cart", func(t *testing.T) {
		f := newOrderHandlerFixture(t)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).Return(&integration.OrderResult{
			ErpOrderID: "ms-1",
			Accepted:   true,
		}, nil)

		w := f.checkout(t, orderapp.CheckoutRequest{
			Name:  "Айгерим",
			Phone: "+77011234567",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var envelope struct {
			Success bool                    `json:"success"`
			Data    *orderapp.OrderResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.True(t, envelope.Success)
		assert.Equal(t, string(order.StatusSubmitted), envelope.Data.Status)
		assert.Equal(t, "140616", envelope.Data.TotalAmount.String())
		assert.False(t, envelope.Data.PriceAdjusted)

		// the cart is gone after a successful checkout
		_, err := f.store.Load(context.Background(), f.cartID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		f := newOrderHandlerFixture(t)
		require.NoError(t, f.store.Delete(context.Background(), f.cartID))

		w := f.checkout(t, orderapp.CheckoutRequest{
			Name:  "Айгерим",
			Phone: "+77011234567",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var envelope struct {
			Error *dto.ErrorInfo `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		require.NotNil(t, envelope.Error)
		assert.Equal(t, dto.ErrCodeEmptyCart, envelope.Error.Code)
	})

	t.Run("erp outage keeps the cart", func(t *testing.T) {
		f := newOrderHandlerFixture(t)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.erp.On("PushOrder", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

		w := f.checkout(t, orderapp.CheckoutRequest{
			Name:  "Айгерим",
			Phone: "+77011234567",
		})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		_, err := f.store.Load(context.Background(), f.cartID)
		assert.NoError(t, err)
	})

	t.Run("missing contact is a 400", func(t *testing.T) {
		f := newOrderHandlerFixture(t)

		w := f.checkout(t, orderapp.CheckoutRequest{Phone: "+77011234567"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_Get(t *testing.T) {
	f := newOrderHandlerFixture(t)
	o, err := order.New(order.Contact{Name: "Айгерим", Phone: "+77011234567"}, "ru")
	require.NoError(t, err)
	f.orders.On("FindByNumber", mock.Anything, o.Number).Return(o, nil)
	f.orders.On("FindByNumber", mock.Anything, "RL-00000000-missing").Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+o.Number, nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/RL-00000000-missing", nil)
	w = httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
