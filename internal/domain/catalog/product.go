package catalog

import (
	"strings"
	"time"

	"github.com/roastline/storefront/internal/domain/shared"
)

// ProductStatus represents the storefront visibility of a product
type ProductStatus string

const (
	ProductStatusActive ProductStatus = "active"
	ProductStatusHidden ProductStatus = "hidden"
)

// RoastLevel is the roast profile shown on the product card
type RoastLevel string

const (
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

// Product is a coffee position in the storefront catalog.
// Name and description are stored in both storefront languages; the HTTP
// layer picks the localized pair per request.
type Product struct {
	shared.BaseAggregateRoot
	SKU           string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Slug          string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	NameRU        string        `gorm:"type:varchar(200);not null"`
	NameEN        string        `gorm:"type:varchar(200);not null"`
	DescriptionRU string        `gorm:"type:text"`
	DescriptionEN string        `gorm:"type:text"`
	Origin        string        `gorm:"type:varchar(100)"`
	Roast         RoastLevel    `gorm:"type:varchar(20);not null;default:'medium'"`
	Unit          string        `gorm:"type:varchar(20);not null;default:'kg'"`
	Image         string        `gorm:"type:varchar(500)"`
	Status        ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder     int           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a catalog product
func NewProduct(sku, slug, nameRU, nameEN string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if nameRU == "" || nameEN == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name is required in both languages")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Slug:              strings.ToLower(slug),
		NameRU:            nameRU,
		NameEN:            nameEN,
		Roast:             RoastMedium,
		Unit:              "kg",
		Status:            ProductStatusActive,
	}
	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// Name returns the localized product name, defaulting to Russian
func (p *Product) Name(lang string) string {
	if lang == "en" {
		return p.NameEN
	}
	return p.NameRU
}

// Description returns the localized description, defaulting to Russian
func (p *Product) Description(lang string) string {
	if lang == "en" {
		return p.DescriptionEN
	}
	return p.DescriptionRU
}

// Describe sets bilingual descriptions
func (p *Product) Describe(ru, en string) {
	p.DescriptionRU = ru
	p.DescriptionEN = en
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetOrigin sets the growing region shown on the card
func (p *Product) SetOrigin(origin string) {
	p.Origin = origin
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetRoast sets the roast profile
func (p *Product) SetRoast(roast RoastLevel) error {
	switch roast {
	case RoastLight, RoastMedium, RoastDark:
	default:
		return shared.NewDomainError("INVALID_ROAST", "Unknown roast level")
	}
	p.Roast = roast
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetImage sets the display image URL
func (p *Product) SetImage(url string) {
	p.Image = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSortOrder sets the catalog display position
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Hide removes the product from the storefront without deleting it
func (p *Product) Hide() {
	if p.Status == ProductStatusHidden {
		return
	}
	p.Status = ProductStatusHidden
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Show returns a hidden product to the storefront
func (p *Product) Show() {
	if p.Status == ProductStatusActive {
		return
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is visible on the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	for _, r := range slug {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return shared.NewDomainError("INVALID_SLUG", "Slug can only contain lowercase letters, numbers, and hyphens")
		}
	}
	return nil
}
