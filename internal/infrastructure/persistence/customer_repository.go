package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/identity"
	"github.com/roastline/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements identity.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Customer, error) {
	var c identity.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*identity.Customer, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var c identity.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *identity.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

var _ identity.CustomerRepository = (*GormCustomerRepository)(nil)
