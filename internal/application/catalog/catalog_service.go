package catalog

import (
	"context"
	"errors"

	"github.com/roastline/storefront/internal/domain/catalog"
	"github.com/roastline/storefront/internal/domain/shared"
)

// CatalogService serves the public storefront catalog.
// Only active products are visible; hidden positions behave as absent.
type CatalogService struct {
	products catalog.ProductRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(products catalog.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// List returns a page of localized product cards
func (s *CatalogService) List(ctx context.Context, req ProductListFilter, locale string) (*ProductListResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	products, err := s.products.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i], locale))
	}

	return &ProductListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetBySlug returns one localized product card by its URL slug.
// Hidden products are reported as not found.
func (s *CatalogService) GetBySlug(ctx context.Context, slug, locale string) (*ProductResponse, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product.Status != catalog.ProductStatusActive {
		return nil, shared.ErrNotFound
	}
	resp := ToProductResponse(product, locale)
	return &resp, nil
}

// GetBySKU returns one localized product card by SKU.
// Hidden products are reported as not found.
func (s *CatalogService) GetBySKU(ctx context.Context, sku, locale string) (*ProductResponse, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnknownProduct
		}
		return nil, err
	}
	if product.Status != catalog.ProductStatusActive {
		return nil, shared.ErrUnknownProduct
	}
	resp := ToProductResponse(product, locale)
	return &resp, nil
}
