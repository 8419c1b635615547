package identity

import (
	"regexp"
	"time"

	"github.com/roastline/storefront/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Customer is a storefront account identified by phone number.
// Accounts are created lazily on first successful code verification.
type Customer struct {
	shared.BaseAggregateRoot
	Phone       string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(200)"`
	Email       string `gorm:"type:varchar(200)"`
	Locale      string `gorm:"type:varchar(5);not null;default:'ru'"`
	LastLoginAt *time.Time
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer for a verified phone number
func NewCustomer(phone string) (*Customer, error) {
	if !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Phone:             phone,
		Locale:            "ru",
	}, nil
}

// RecordLogin stamps a successful verification
func (c *Customer) RecordLogin() {
	now := time.Now()
	c.LastLoginAt = &now
	c.UpdatedAt = now
}

// UpdateProfile sets optional profile fields
func (c *Customer) UpdateProfile(name, email, locale string) {
	if name != "" {
		c.Name = name
	}
	if email != "" {
		c.Email = email
	}
	if locale == "ru" || locale == "en" {
		c.Locale = locale
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
