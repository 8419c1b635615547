package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CheckoutLine is one client-side cart line submitted for checkout.
// Prices are what the client displayed; the server re-derives them and the
// server's numbers win.
type CheckoutLine struct {
	SKU          string          `json:"sku" binding:"required,min=1,max=50"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
}

// CheckoutRequest submits a cart for ordering
type CheckoutRequest struct {
	CartID  uuid.UUID      `json:"cart_id"`
	Name    string         `json:"name" binding:"required,min=1,max=200"`
	Phone   string         `json:"phone" binding:"required,phone"`
	Email   string         `json:"email" binding:"omitempty,email,max=200"`
	Address string         `json:"address" binding:"omitempty,max=500"`
	Comment string         `json:"comment" binding:"omitempty,max=1000"`
	Lines   []CheckoutLine `json:"lines"`
}

// ItemResponse represents one order line in API responses
type ItemResponse struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	Items         []ItemResponse  `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PriceAdjusted bool            `json:"price_adjusted"`
	Notice        string          `json:"notice,omitempty"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderListResponse is a page of a customer's orders
type OrderListResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ToOrderResponse converts a domain Order to its API projection
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			SKU:          item.SKU,
			Name:         item.Name,
			Quantity:     item.Quantity.Amount(),
			PricePerUnit: item.UnitPrice.Amount(),
			Total:        item.Amount.Amount(),
		})
	}
	return OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		Status:      string(o.Status),
		Items:       items,
		TotalAmount: o.TotalAmount.Amount(),
		SubmittedAt: o.SubmittedAt,
		CreatedAt:   o.CreatedAt,
	}
}
