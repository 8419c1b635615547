package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/roastline/storefront/internal/domain/identity"
	"github.com/roastline/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

type issuedCode struct {
	code      string
	expiresAt time.Time
}

type phoneWindow struct {
	count   int
	resetAt time.Time
}

// StubCodeProvider issues one-time login codes without sending SMS.
// Codes are kept in memory and surfaced back to the caller as a hint,
// which is what the demo frontend shows. When a fixed stub code is
// configured every phone accepts that code.
type StubCodeProvider struct {
	mu      sync.Mutex
	codes   map[string]issuedCode
	windows map[string]phoneWindow

	codeTTL     time.Duration
	codeLength  int
	maxPerPhone int
	window      time.Duration
	stubCode    string

	logger *zap.Logger
	now    func() time.Time
}

// NewStubCodeProvider creates a provider from auth configuration.
func NewStubCodeProvider(cfg config.AuthConfig, logger *zap.Logger) *StubCodeProvider {
	return &StubCodeProvider{
		codes:       make(map[string]issuedCode),
		windows:     make(map[string]phoneWindow),
		codeTTL:     cfg.CodeTTL,
		codeLength:  cfg.CodeLength,
		maxPerPhone: cfg.MaxPerPhone,
		window:      cfg.RequestLimit,
		stubCode:    cfg.StubCode,
		logger:      logger,
		now:         time.Now,
	}
}

var _ identity.Provider = (*StubCodeProvider)(nil)

// RequestCode issues a fresh code for the phone, replacing any previous one.
func (p *StubCodeProvider) RequestCode(ctx context.Context, phone string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()

	w := p.windows[phone]
	if now.After(w.resetAt) {
		w = phoneWindow{resetAt: now.Add(p.window)}
	}
	if p.maxPerPhone > 0 && w.count >= p.maxPerPhone {
		p.logger.Warn("login code request rate limited", zap.String("phone", phone))
		return "", identity.ErrTooManyCodes
	}
	w.count++
	p.windows[phone] = w

	code := p.stubCode
	if code == "" {
		generated, err := randomDigits(p.codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate login code: %w", err)
		}
		code = generated
	}

	p.codes[phone] = issuedCode{code: code, expiresAt: now.Add(p.codeTTL)}

	p.logger.Info("login code issued",
		zap.String("phone", phone),
		zap.Time("expires_at", p.codes[phone].expiresAt))

	return code, nil
}

// VerifyCode checks the code issued for the phone. A successful
// verification consumes the code.
func (p *StubCodeProvider) VerifyCode(ctx context.Context, phone, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	issued, ok := p.codes[phone]
	if !ok {
		return identity.ErrCodeMismatch
	}
	if p.now().After(issued.expiresAt) {
		delete(p.codes, phone)
		return identity.ErrCodeExpired
	}
	if issued.code != code {
		return identity.ErrCodeMismatch
	}

	delete(p.codes, phone)
	return nil
}

func randomDigits(n int) (string, error) {
	if n <= 0 {
		n = 4
	}
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
