package erp

import (
	"errors"
	"time"
)

// MoyskladConfig holds configuration for the Moysklad warehouse API
type MoyskladConfig struct {
	// BaseURL is the JSON API endpoint
	BaseURL string
	// Login and Password authenticate via HTTP basic auth
	Login    string
	Password string
	// Organization is the organization identifier orders are created under
	Organization string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
	// MaxRetries bounds retry attempts on transient failures
	MaxRetries int
}

// MoyskladProductionAPIURL is the production API endpoint
const MoyskladProductionAPIURL = "https://api.moysklad.ru/api/remap/1.2"

// Errors for Moysklad configuration
var (
	ErrMoyskladConfigMissingLogin        = errors.New("moysklad: login is required")
	ErrMoyskladConfigMissingPassword     = errors.New("moysklad: password is required")
	ErrMoyskladConfigMissingOrganization = errors.New("moysklad: organization is required")
)

// NewMoyskladConfig creates a new Moysklad configuration with defaults
func NewMoyskladConfig(login, password, organization string) *MoyskladConfig {
	return &MoyskladConfig{
		BaseURL:      MoyskladProductionAPIURL,
		Login:        login,
		Password:     password,
		Organization: organization,
		Timeout:      10 * time.Second,
		MaxRetries:   3,
	}
}

// Validate validates the Moysklad configuration
func (c *MoyskladConfig) Validate() error {
	if c.Login == "" {
		return ErrMoyskladConfigMissingLogin
	}
	if c.Password == "" {
		return ErrMoyskladConfigMissingPassword
	}
	if c.Organization == "" {
		return ErrMoyskladConfigMissingOrganization
	}
	if c.BaseURL == "" {
		c.BaseURL = MoyskladProductionAPIURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	return nil
}
