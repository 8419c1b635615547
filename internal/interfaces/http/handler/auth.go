package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/roastline/storefront/internal/application/identity"
	"github.com/roastline/storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles phone-code login and the customer profile
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RequestCode issues a one-time login code for a phone number
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req identityapp.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid phone number")
		return
	}

	resp, err := h.authService.RequestCode(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// VerifyCode exchanges a code for a session token
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req identityapp.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid verification request")
		return
	}

	resp, err := h.authService.VerifyCode(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Profile returns the authenticated customer's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	customerID := getCustomerID(c)
	if customerID == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.authService.Profile(c.Request.Context(), *customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProfile updates the authenticated customer's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	customerID := getCustomerID(c)
	if customerID == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid profile update")
		return
	}

	resp, err := h.authService.UpdateProfile(c.Request.Context(), *customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
