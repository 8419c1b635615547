package pricing

import (
	"context"

	"github.com/google/uuid"
)

// RuleRepository defines the persistence contract for pricing rules
type RuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PricingRule, error)
	// FindBySKU returns shared.ErrNotFound when no rule exists for the SKU
	FindBySKU(ctx context.Context, sku string) (*PricingRule, error)
	FindAll(ctx context.Context) ([]PricingRule, error)
	Save(ctx context.Context, rule *PricingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
