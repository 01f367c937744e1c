package dto

import (
	"net/http"
	"strings"

	"github.com/salesorder/backend/internal/domain/shared"
)

// Error codes. The domain codes are used verbatim; the rest describe
// transport-level failures.
const (
	ErrCodeValidation        = shared.CodeValidation
	ErrCodeInvalidQuantity   = shared.CodeInvalidQuantity
	ErrCodeInvalidTaxRate    = shared.CodeInvalidTaxRate
	ErrCodeInvalidPrice      = shared.CodeInvalidPrice
	ErrCodeReferenceNotFound = shared.CodeReferenceNotFound
	ErrCodeNotFound          = shared.CodeNotFound
	ErrCodeAlreadyExists     = shared.CodeAlreadyExists
	ErrCodeConsistency       = shared.CodeConsistency

	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInternal        = "INTERNAL_ERROR"

	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidQuantity:   http.StatusBadRequest,
	ErrCodeInvalidTaxRate:    http.StatusBadRequest,
	ErrCodeInvalidPrice:      http.StatusBadRequest,
	ErrCodeReferenceNotFound: http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeConsistency: http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,

	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorCodeAliases accepts the ERR_ prefixed spellings some clients send back
var errorCodeAliases = map[string]string{
	"ERR_VALIDATION":     ErrCodeValidation,
	"ERR_NOT_FOUND":      ErrCodeNotFound,
	"ERR_ALREADY_EXISTS": ErrCodeAlreadyExists,
	"ERR_BAD_REQUEST":    ErrCodeBadRequest,
	"ERR_INVALID_JSON":   ErrCodeInvalidJSON,
	"ERR_INTERNAL":       ErrCodeInternal,
	"INVALID_INPUT":      ErrCodeValidation,
}

// NormalizeErrorCode returns the canonical spelling of code.
// Codes without a status mapping collapse to INTERNAL_ERROR.
func NormalizeErrorCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if canonical, ok := errorCodeAliases[code]; ok {
		return canonical
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
