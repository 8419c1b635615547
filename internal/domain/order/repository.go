package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/shared"
)

// Repository defines the persistence port for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	Save(ctx context.Context, o *Order) error
}
