package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRuleRepository implements pricing.RuleRepository using GORM
type GormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GormRuleRepository
func NewGormRuleRepository(db *gorm.DB) *GormRuleRepository {
	return &GormRuleRepository{db: db}
}

// FindByID finds a pricing rule by its ID
func (r *GormRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PricingRule, error) {
	var rule pricing.PricingRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindBySKU finds the pricing rule for a SKU
func (r *GormRuleRepository) FindBySKU(ctx context.Context, sku string) (*pricing.PricingRule, error) {
	var rule pricing.PricingRule
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(sku)).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll returns every pricing rule
func (r *GormRuleRepository) FindAll(ctx context.Context) ([]pricing.PricingRule, error) {
	var rules []pricing.PricingRule
	if err := r.db.WithContext(ctx).Order("sku ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates a pricing rule
func (r *GormRuleRepository) Save(ctx context.Context, rule *pricing.PricingRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

// Delete deletes a pricing rule
func (r *GormRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.PricingRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ pricing.RuleRepository = (*GormRuleRepository)(nil)
