package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError(CodeNotFound, "sales order not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(fmt.Errorf("load: %w", err), ErrNotFound))
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewConsistencyError("re-read failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConsistency)
	assert.Equal(t, "re-read failed: connection reset", err.Error())
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewValidationError("client not found"), true},
		{"invalid quantity", NewDomainError(CodeInvalidQuantity, "quantity must be positive"), true},
		{"invalid tax rate", NewDomainError(CodeInvalidTaxRate, "bad rate"), true},
		{"reference", ErrReferenceNotFound, true},
		{"wrapped", fmt.Errorf("create: %w", NewValidationError("x")), true},
		{"not found", ErrNotFound, false},
		{"plain", errors.New("io"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidationError(tt.err))
		})
	}
}
