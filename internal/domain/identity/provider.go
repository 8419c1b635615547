package identity

import (
	"context"

	"github.com/roastline/storefront/internal/domain/shared"
)

// Common verification errors
var (
	ErrCodeMismatch = shared.NewDomainError("CODE_MISMATCH", "Verification code is incorrect")
	ErrCodeExpired  = shared.NewDomainError("CODE_EXPIRED", "Verification code has expired")
	ErrTooManyCodes = shared.NewDomainError("TOO_MANY_CODES", "Too many code requests for this phone")
)

// Provider issues and checks one-time login codes for a phone number.
// The production implementation would talk to an SMS gateway; the shipped
// implementation is a deterministic stub suitable for demos and tests.
type Provider interface {
	// RequestCode issues a one-time code for the phone number.
	// The returned hint is non-empty only for stub implementations
	// that surface the code instead of sending SMS.
	RequestCode(ctx context.Context, phone string) (hint string, err error)

	// VerifyCode checks the code previously issued for the phone.
	// Returns ErrCodeMismatch or ErrCodeExpired on failure.
	VerifyCode(ctx context.Context, phone, code string) error
}
