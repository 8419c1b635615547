package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/identity"
	"github.com/roastline/storefront/internal/domain/shared"
	"github.com/roastline/storefront/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles phone-code login.
// Accounts are created lazily: the first successful verification for an
// unknown phone creates the customer.
type AuthService struct {
	customers identity.CustomerRepository
	provider  identity.Provider
	tokens    *auth.JWTService
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	customers identity.CustomerRepository,
	provider identity.Provider,
	tokens *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		customers: customers,
		provider:  provider,
		tokens:    tokens,
		logger:    logger,
	}
}

// RequestCode issues a one-time login code for the phone
func (s *AuthService) RequestCode(ctx context.Context, req RequestCodeRequest) (*RequestCodeResponse, error) {
	phone := normalizePhone(req.Phone)

	hint, err := s.provider.RequestCode(ctx, phone)
	if err != nil {
		return nil, err
	}

	return &RequestCodeResponse{Phone: phone, Hint: hint}, nil
}

// VerifyCode checks the code and opens a session, creating the customer
// account on first login.
func (s *AuthService) VerifyCode(ctx context.Context, req VerifyCodeRequest, locale string) (*SessionResponse, error) {
	phone := normalizePhone(req.Phone)

	if err := s.provider.VerifyCode(ctx, phone, req.Code); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		customer, err = identity.NewCustomer(phone)
		if err != nil {
			return nil, err
		}
		customer.UpdateProfile("", "", locale)
		s.logger.Info("customer account created",
			zap.String("customer_id", customer.ID.String()))
	}

	customer.RecordLogin()
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(customer.ID, customer.Phone, customer.Locale)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Customer:    ToCustomerResponse(customer),
	}, nil
}

// Profile returns the customer behind a session
func (s *AuthService) Profile(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// UpdateProfile updates the profile fields of the session's customer
func (s *AuthService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.UpdateProfile(req.Name, req.Email, req.Locale)
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// normalizePhone strips separators so the same number always maps to the
// same account
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
