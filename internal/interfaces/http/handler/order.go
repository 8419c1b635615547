package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/roastline/storefront/internal/application/order"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order history
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderapp.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

// Checkout submits the cart as an order. Works for guests and for
// authenticated customers alike; a session links the order to the account.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout request")
		return
	}
	if req.CartID == uuid.Nil {
		req.CartID = middleware.GetCartID(c)
	}

	resp, err := h.checkoutService.Checkout(c.Request.Context(), req, getCustomerID(c), middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one order by its public number
func (h *OrderHandler) Get(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.checkoutService.Get(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Retry re-pushes a failed order to the warehouse
func (h *OrderHandler) Retry(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	resp, err := h.checkoutService.Retry(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMine returns the authenticated customer's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	customerID := getCustomerID(c)
	if customerID == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.checkoutService.ListForCustomer(c.Request.Context(), *customerID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}
