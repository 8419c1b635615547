package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/roastline/storefront/internal/application/catalog"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
)

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns a page of product cards localized for the request
func (h *CatalogHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}

	resp, err := h.catalogService.List(c.Request.Context(), filter, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// GetBySlug returns one product card by its URL slug
func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Product slug is required")
		return
	}

	resp, err := h.catalogService.GetBySlug(c.Request.Context(), slug, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
