package erp

import (
	"context"
	"fmt"
	"sync"

	"github.com/roastline/storefront/internal/domain/integration"
	"go.uber.org/zap"
)

// StubGateway is an in-process ErpGateway for development and demos.
// It accepts every order and remembers what was pushed.
type StubGateway struct {
	mu     sync.Mutex
	orders map[string]string // order number -> erp id
	nextID int
	logger *zap.Logger
}

// NewStubGateway creates a stub ERP gateway
func NewStubGateway(logger *zap.Logger) *StubGateway {
	return &StubGateway{
		orders: make(map[string]string),
		logger: logger.Named("erp-stub"),
	}
}

// PushOrder accepts the order and assigns a synthetic ERP ID.
// Re-pushing the same order number returns the previously assigned ID.
func (g *StubGateway) PushOrder(ctx context.Context, req integration.OrderRequest) (*integration.OrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id, ok := g.orders[req.Number]; ok {
		return &integration.OrderResult{ErpOrderID: id, Accepted: true, Message: "already accepted"}, nil
	}

	g.nextID++
	id := fmt.Sprintf("stub-%06d", g.nextID)
	g.orders[req.Number] = id

	g.logger.Info("order accepted",
		zap.String("order_number", req.Number),
		zap.String("erp_order_id", id),
		zap.Int("lines", len(req.Lines)),
	)
	return &integration.OrderResult{ErpOrderID: id, Accepted: true}, nil
}

// FetchStock reports no stock information
func (g *StubGateway) FetchStock(ctx context.Context, skus []string) ([]integration.StockLevel, error) {
	return []integration.StockLevel{}, nil
}

// Ping always succeeds
func (g *StubGateway) Ping(ctx context.Context) error {
	return nil
}

var _ integration.ErpGateway = (*StubGateway)(nil)
