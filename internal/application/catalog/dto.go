package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/catalog"
)

// ProductListFilter represents filter options for the storefront catalog
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a localized product card
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Origin      string    `json:"origin"`
	Roast       string    `json:"roast"`
	Unit        string    `json:"unit"`
	Image       string    `json:"image"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListResponse is a page of localized product cards
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ToProductResponse converts a domain Product to a localized card
func ToProductResponse(p *catalog.Product, locale string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Slug:        p.Slug,
		Name:        p.Name(locale),
		Description: p.Description(locale),
		Origin:      p.Origin,
		Roast:       string(p.Roast),
		Unit:        p.Unit,
		Image:       p.Image,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
	}
}
