package dto

import "net/http"

// Error code constants.
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation       = "ERR_VALIDATION"
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeCodeMismatch = "ERR_CODE_MISMATCH"
	ErrCodeCodeExpired  = "ERR_CODE_EXPIRED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeUnknownProduct      = "ERR_UNKNOWN_PRODUCT"
)

// Business rule error codes
const (
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	ErrCodeBusinessRule  = "ERR_BUSINESS_RULE"
	ErrCodeEmptyCart     = "ERR_EMPTY_CART"
	ErrCodeCartCorrupted = "ERR_CART_CORRUPTED"
	ErrCodeOrderRejected = "ERR_ORDER_REJECTED"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Rate limiting and availability error codes
const (
	ErrCodeRateLimited    = "ERR_RATE_LIMITED"
	ErrCodeTooManyCodes   = "ERR_TOO_MANY_CODES"
	ErrCodeErpUnavailable = "ERR_ERP_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeCodeMismatch: http.StatusUnauthorized,
	ErrCodeCodeExpired:  http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUnknownProduct:      http.StatusNotFound,

	ErrCodeInvalidState:  http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:  http.StatusUnprocessableEntity,
	ErrCodeEmptyCart:     http.StatusUnprocessableEntity,
	ErrCodeCartCorrupted: http.StatusUnprocessableEntity,
	ErrCodeOrderRejected: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeRateLimited:    http.StatusTooManyRequests,
	ErrCodeTooManyCodes:   http.StatusTooManyRequests,
	ErrCodeErpUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"UNKNOWN_PRODUCT": ErrCodeUnknownProduct,
	"CART_CORRUPTED":  ErrCodeCartCorrupted,
	"EMPTY_CART":      ErrCodeEmptyCart,
	"EMPTY_ORDER":     ErrCodeEmptyCart,
	"ORDER_REJECTED":  ErrCodeOrderRejected,
	"ERP_UNAVAILABLE": ErrCodeErpUnavailable,

	"CODE_MISMATCH":  ErrCodeCodeMismatch,
	"CODE_EXPIRED":   ErrCodeCodeExpired,
	"TOO_MANY_CODES": ErrCodeTooManyCodes,

	"INVALID_PHONE":    ErrCodeValidationFormat,
	"INVALID_SKU":      ErrCodeValidation,
	"INVALID_SLUG":     ErrCodeValidation,
	"INVALID_NAME":     ErrCodeValidation,
	"INVALID_QUANTITY": ErrCodeValidation,
	"INVALID_PRICE":    ErrCodeValidation,
	"INVALID_CONTACT":  ErrCodeValidation,
	"INVALID_ROAST":    ErrCodeValidation,
	"INVALID_TIERS":    ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
