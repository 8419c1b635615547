package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/infrastructure/auth"
)

// Session context keys
const (
	SessionClaimsKey     = "session_claims"
	SessionCustomerIDKey = "session_customer_id"

	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireSession rejects requests without a valid session token
func RequireSession(tokens *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessionClaims(c, tokens)
		if err != nil {
			code := "ERR_TOKEN_INVALID"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = "ERR_TOKEN_EXPIRED"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": "Authentication required",
				},
			})
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

// OptionalSession attaches session claims when a valid token is present and
// lets the request through either way. Guest checkout depends on this.
func OptionalSession(tokens *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := sessionClaims(c, tokens); err == nil {
			setSession(c, claims)
		}
		c.Next()
	}
}

func sessionClaims(c *gin.Context, tokens *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(header, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return tokens.Validate(tokenString)
}

func setSession(c *gin.Context, claims *auth.Claims) {
	c.Set(SessionClaimsKey, claims)
	c.Set(SessionCustomerIDKey, claims.CustomerID)
}

// GetCustomerID returns the authenticated customer's ID, or false when the
// request carries no session
func GetCustomerID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.GetString(SessionCustomerIDKey)
	if idStr == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
