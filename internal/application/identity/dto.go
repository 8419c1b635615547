package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/identity"
)

// RequestCodeRequest asks for a one-time login code
type RequestCodeRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
}

// RequestCodeResponse acknowledges a code request.
// Hint carries the code itself when the stub provider is active.
type RequestCodeResponse struct {
	Phone string `json:"phone"`
	Hint  string `json:"hint,omitempty"`
}

// VerifyCodeRequest exchanges a code for a session token
type VerifyCodeRequest struct {
	Phone string `json:"phone" binding:"required,phone"`
	Code  string `json:"code" binding:"required,min=4,max=8"`
}

// SessionResponse is an issued session with its customer profile
type SessionResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Customer    CustomerResponse `json:"customer"`
}

// UpdateProfileRequest updates the customer profile
type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,max=200"`
	Email  string `json:"email" binding:"omitempty,email,max=200"`
	Locale string `json:"locale" binding:"omitempty,oneof=ru en"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID  `json:"id"`
	Phone       string     `json:"phone"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Locale      string     `json:"locale"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToCustomerResponse converts a domain Customer to its API projection
func ToCustomerResponse(c *identity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Phone:       c.Phone,
		Name:        c.Name,
		Email:       c.Email,
		Locale:      c.Locale,
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
	}
}
