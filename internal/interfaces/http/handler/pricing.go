package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/roastline/storefront/internal/application/pricing"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
)

// PricingHandler serves quotes and the volume discount ladder
type PricingHandler struct {
	BaseHandler
	quoteService *pricingapp.QuoteService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(quoteService *pricingapp.QuoteService) *PricingHandler {
	return &PricingHandler{quoteService: quoteService}
}

// Quote prices a (SKU, quantity) pair without touching the cart.
// The product page uses this to show live prices as the shopper changes the
// quantity.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req pricingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quote request")
		return
	}

	resp, err := h.quoteService.Quote(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TierTable returns the per-tier prices for a SKU
func (h *PricingHandler) TierTable(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "Product SKU is required")
		return
	}

	resp, err := h.quoteService.TierTable(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
