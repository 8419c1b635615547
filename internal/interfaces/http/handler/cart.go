package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/roastline/storefront/internal/application/cart"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the shopper's cart. The cart session rides on the
// X-Cart-ID header bound by the CartID middleware.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.cartService.Get(c.Request.Context(), middleware.GetCartID(c), middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a position to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart item")
		return
	}

	resp, err := h.cartService.AddItem(c.Request.Context(), middleware.GetCartID(c), req, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetQuantity sets the absolute quantity for a line
func (h *CartHandler) SetQuantity(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "Product SKU is required")
		return
	}

	var req cartapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}

	resp, err := h.cartService.SetQuantity(c.Request.Context(), middleware.GetCartID(c), sku, req, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "Product SKU is required")
		return
	}

	resp, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetCartID(c), sku, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.cartService.Clear(c.Request.Context(), middleware.GetCartID(c), middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
