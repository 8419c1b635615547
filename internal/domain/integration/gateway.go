package integration

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderLine is one line of an order being pushed to the ERP
type OrderLine struct {
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// OrderRequest is the ERP-facing projection of a submitted order
type OrderRequest struct {
	Number        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Address       string
	Comment       string
	Lines         []OrderLine
	TotalAmount   decimal.Decimal
}

// OrderResult is the ERP's acknowledgement of a pushed order
type OrderResult struct {
	ErpOrderID string
	Accepted   bool
	Message    string
}

// StockLevel reports remaining stock for one SKU in kilograms
type StockLevel struct {
	SKU      string
	Quantity decimal.Decimal
}

// ErpGateway is the outbound port to the warehouse ERP. Implementations
// live in infrastructure; order submission must be safe to retry with the
// same order number.
type ErpGateway interface {
	// PushOrder submits an order to the ERP and returns its acknowledgement.
	// A non-nil error means the push itself failed; an OrderResult with
	// Accepted=false means the ERP rejected the order.
	PushOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)

	// FetchStock returns current stock levels for the given SKUs.
	// SKUs unknown to the ERP are omitted from the result.
	FetchStock(ctx context.Context, skus []string) ([]StockLevel, error)

	// Ping verifies connectivity and credentials
	Ping(ctx context.Context) error
}
