package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/roastline/storefront/internal/domain/integration"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the Moysklad API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Adapter errors
var (
	ErrMoyskladUnavailable     = errors.New("moysklad: service unavailable")
	ErrMoyskladRequestFailed   = errors.New("moysklad: request failed")
	ErrMoyskladInvalidResponse = errors.New("moysklad: invalid response")
)

// MoyskladAdapter implements integration.ErpGateway against the Moysklad
// warehouse API. Order pushes are idempotent on the order number: a re-push
// of an already accepted number returns the existing order instead of
// creating a duplicate.
type MoyskladAdapter struct {
	config     *MoyskladConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMoyskladAdapter creates a new Moysklad adapter with the given configuration
func NewMoyskladAdapter(config *MoyskladConfig, logger *zap.Logger) (*MoyskladAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MoyskladAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("moysklad"),
	}, nil
}

// PushOrder submits an order as a Moysklad customer order
func (a *MoyskladAdapter) PushOrder(ctx context.Context, req integration.OrderRequest) (*integration.OrderResult, error) {
	if existing, err := a.findOrderByName(ctx, req.Number); err == nil && existing != nil {
		return &integration.OrderResult{
			ErpOrderID: existing.ID,
			Accepted:   true,
			Message:    "already accepted",
		}, nil
	}

	payload := moyskladOrderRequest{
		Name: req.Number,
		Organization: moyskladMetaRef{
			Meta: moyskladMeta{Href: a.config.Organization, Type: "organization"},
		},
		Description: req.Comment,
		Positions:   make([]moyskladOrderLine, 0, len(req.Lines)),
		Attributes: []moyskladAttribute{
			{Name: "customer_name", Value: req.CustomerName},
			{Name: "customer_phone", Value: req.CustomerPhone},
			{Name: "customer_email", Value: req.CustomerEmail},
			{Name: "delivery_address", Value: req.Address},
		},
	}

	for _, line := range req.Lines {
		qty, _ := line.Quantity.Float64()
		payload.Positions = append(payload.Positions, moyskladOrderLine{
			Quantity: qty,
			// Moysklad prices are in minor units of the currency
			Price: line.UnitPrice.Mul(decimal.NewFromInt(100)).IntPart(),
			Assortment: moyskladMetaRef{
				Meta: moyskladMeta{
					Href: a.config.BaseURL + "/entity/product/" + line.SKU,
					Type: "product",
				},
			},
		})
	}

	respBody, status, err := a.doRequest(ctx, http.MethodPost, "/entity/customerorder", payload)
	if err != nil {
		return nil, err
	}

	if status >= 400 {
		msg := parseErrorMessage(respBody)
		a.logger.Warn("order rejected",
			zap.String("order_number", req.Number),
			zap.Int("status", status),
			zap.String("message", msg),
		)
		return &integration.OrderResult{Accepted: false, Message: msg}, nil
	}

	var resp moyskladOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoyskladInvalidResponse, err)
	}

	return &integration.OrderResult{
		ErpOrderID: resp.ID,
		Accepted:   true,
	}, nil
}

// FetchStock returns current stock levels for the given SKUs
func (a *MoyskladAdapter) FetchStock(ctx context.Context, skus []string) ([]integration.StockLevel, error) {
	respBody, status, err := a.doRequest(ctx, http.MethodGet, "/report/stock/all", nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrMoyskladRequestFailed, status, parseErrorMessage(respBody))
	}

	var resp moyskladStockResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoyskladInvalidResponse, err)
	}

	wanted := make(map[string]bool, len(skus))
	for _, sku := range skus {
		wanted[strings.ToUpper(sku)] = true
	}

	levels := make([]integration.StockLevel, 0, len(skus))
	for _, row := range resp.Rows {
		article := strings.ToUpper(row.Article)
		if !wanted[article] {
			continue
		}
		levels = append(levels, integration.StockLevel{
			SKU:      article,
			Quantity: decimal.NewFromFloat(row.Stock),
		})
	}
	return levels, nil
}

// Ping verifies connectivity and credentials
func (a *MoyskladAdapter) Ping(ctx context.Context) error {
	respBody, status, err := a.doRequest(ctx, http.MethodGet, "/entity/organization", nil)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: invalid credentials", ErrMoyskladRequestFailed)
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d: %s", ErrMoyskladRequestFailed, status, parseErrorMessage(respBody))
	}
	return nil
}

// findOrderByName looks up an existing customer order by its name
func (a *MoyskladAdapter) findOrderByName(ctx context.Context, name string) (*moyskladOrderResponse, error) {
	path := "/entity/customerorder?filter=" + url.QueryEscape("name="+name)
	respBody, status, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrMoyskladRequestFailed, status)
	}

	var resp moyskladOrderSearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMoyskladInvalidResponse, err)
	}
	if len(resp.Rows) == 0 {
		return nil, nil
	}
	return &resp.Rows[0], nil
}

// doRequest performs an HTTP request against the Moysklad API with basic auth.
// Transient transport errors and 5xx responses are retried with backoff up to
// MaxRetries; 4xx responses are returned to the caller as-is.
func (a *MoyskladAdapter) doRequest(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("moysklad: failed to encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < a.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, 0, fmt.Errorf("moysklad: failed to create request: %w", err)
		}
		req.SetBasicAuth(a.config.Login, a.config.Password)
		req.Header.Set("Accept", "application/json;charset=utf-8")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := a.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrMoyskladUnavailable, err)
			continue
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("moysklad: failed to read response: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%w: HTTP %d", ErrMoyskladUnavailable, resp.StatusCode)
			continue
		}

		return respBody, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

// parseErrorMessage extracts the first error description from an error envelope
func parseErrorMessage(body []byte) string {
	var resp moyskladErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Errors) == 0 {
		return "unknown error"
	}
	return resp.Errors[0].Error
}

var _ integration.ErpGateway = (*MoyskladAdapter)(nil)
