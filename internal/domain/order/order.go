package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a storefront order
type Status string

const (
	// StatusPending: order recorded, not yet accepted by the ERP
	StatusPending Status = "PENDING"
	// StatusSubmitted: ERP accepted the order
	StatusSubmitted Status = "SUBMITTED"
	// StatusFailed: ERP rejected the order or the push errored
	StatusFailed Status = "FAILED"
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusSubmitted || target == StatusFailed
	case StatusFailed:
		return target == StatusSubmitted // a later retry may succeed
	}
	return false
}

// Item is one priced line in an order snapshot.
// UnitPrice and Amount are the server-recomputed figures in whole tenge;
// client-supplied prices are informational only and never stored here.
type Item struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	SKU       string               `gorm:"type:varchar(50);not null"`
	Name      string               `gorm:"type:varchar(200);not null"`
	Quantity  valueobject.Quantity `gorm:"type:decimal(18,4);not null"`
	UnitPrice valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	Amount    valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
}

// NewItem creates an order item from a server-side quote
func NewItem(orderID uuid.UUID, sku, name string, quantity, unitPrice decimal.Decimal) (*Item, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Order item SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Order item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Order item price cannot be negative")
	}

	qty, err := valueobject.NewKilograms(quantity)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
	}
	price := valueobject.NewMoneyKZT(unitPrice)

	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		SKU:       sku,
		Name:      name,
		Quantity:  qty,
		UnitPrice: price,
		Amount:    price.Multiply(quantity).RoundWhole(),
		CreatedAt: time.Now(),
	}, nil
}

// Contact holds customer and delivery metadata captured at checkout
type Contact struct {
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(30);not null"`
	Email   string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:varchar(500)"`
	Comment string `gorm:"type:varchar(1000)"`
}

// Order is the checkout-time snapshot of a cart plus delivery metadata.
// It is submitted to the ERP exactly once per checkout; the total is always
// the sum of server-recomputed item amounts.
type Order struct {
	shared.BaseAggregateRoot
	Number      string            `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID  *uuid.UUID        `gorm:"type:uuid;index"` // nil for guest checkout
	Contact     Contact           `gorm:"embedded;embeddedPrefix:contact_"`
	Locale      string            `gorm:"type:varchar(5);not null;default:'ru'"`
	Items       []Item            `gorm:"foreignKey:OrderID"`
	TotalAmount valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Status      Status            `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ErpOrderID  string            `gorm:"type:varchar(100);index"`
	FailReason  string            `gorm:"type:varchar(500)"`
	SubmittedAt *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates a pending order with no items yet
func New(contact Contact, locale string) (*Order, error) {
	if contact.Name == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Customer name is required")
	}
	if contact.Phone == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Customer phone is required")
	}
	if locale != "ru" && locale != "en" {
		locale = "ru"
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Contact:           contact,
		Locale:            locale,
		TotalAmount:       valueobject.ZeroKZT(),
		Status:            StatusPending,
	}
	o.Number = generateNumber(o.ID)
	return o, nil
}

// SetCustomer links the order to an authenticated customer
func (o *Order) SetCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
}

// AddItem appends a priced line and folds it into the order total
func (o *Order) AddItem(sku, name string, quantity, unitPrice decimal.Decimal) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items after submission")
	}
	item, err := NewItem(o.ID, sku, name, quantity, unitPrice)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.TotalAmount = o.TotalAmount.MustAdd(item.Amount)
	o.UpdatedAt = time.Now()
	return nil
}

// MarkSubmitted records ERP acceptance
func (o *Order) MarkSubmitted(erpOrderID string) error {
	if !o.Status.CanTransitionTo(StatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot submit order in status %s", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot submit an order without items")
	}

	now := time.Now()
	o.Status = StatusSubmitted
	o.ErpOrderID = erpOrderID
	o.FailReason = ""
	o.SubmittedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderSubmittedEvent(o))
	return nil
}

// MarkFailed records a failed ERP push; the order stays retryable
func (o *Order) MarkFailed(reason string) error {
	if !o.Status.CanTransitionTo(StatusFailed) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot fail order in status %s", o.Status))
	}
	o.Status = StatusFailed
	o.FailReason = reason
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// generateNumber builds a human-readable order number from the creation date
// and the first ID segment
func generateNumber(id uuid.UUID) string {
	return fmt.Sprintf("RL-%s-%s", time.Now().Format("20060102"), id.String()[:8])
}
