package identity

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the persistence port for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}
