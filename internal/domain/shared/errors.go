package shared

import (
	"errors"
	"fmt"
)

// Error codes shared across bounded contexts
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeInvalidTaxRate    = "INVALID_TAX_RATE"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeConsistency       = "CONSISTENCY_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is(err, ErrNotFound) match any NOT_FOUND error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that keeps the underlying cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a VALIDATION_ERROR with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewConsistencyError reports a storage state that should be impossible,
// such as a just-written row that cannot be read back.
func NewConsistencyError(message string, cause error) *DomainError {
	return WrapDomainError(CodeConsistency, message, cause)
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidation        = NewDomainError(CodeValidation, "Validation failed")
	ErrReferenceNotFound = NewDomainError(CodeReferenceNotFound, "Referenced client or item does not exist")
	ErrConsistency       = NewDomainError(CodeConsistency, "Storage consistency failure")
)

// IsValidationError reports whether err belongs to the validation family:
// the generic validation code plus the field-level and reference codes.
func IsValidationError(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case CodeValidation, CodeInvalidQuantity, CodeInvalidTaxRate, CodeInvalidPrice, CodeReferenceNotFound:
		return true
	}
	return false
}
