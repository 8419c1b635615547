package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/shared"
)

// ProductRepository defines the persistence contract for catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	CountActive(ctx context.Context) (int64, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
