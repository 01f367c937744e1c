package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	MaxItemCodeLength        = 50
	MaxItemDescriptionLength = 500
)

// Item is a priced catalog entry that order lines reference
type Item struct {
	shared.BaseEntity
	Code        string
	Description string
	Price       decimal.Decimal
}

// NewItem creates an item stamped at the given time
func NewItem(code, description string, price decimal.Decimal, at time.Time) (*Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("item code cannot be empty")
	}
	if len(code) > MaxItemCodeLength {
		return nil, shared.NewValidationError(fmt.Sprintf("item code cannot exceed %d characters", MaxItemCodeLength))
	}
	if len(description) > MaxItemDescriptionLength {
		return nil, shared.NewValidationError(fmt.Sprintf("item description cannot exceed %d characters", MaxItemDescriptionLength))
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidPrice, "item price cannot be negative")
	}
	return &Item{
		BaseEntity:  shared.NewBaseEntity(at),
		Code:        code,
		Description: description,
		Price:       price,
	}, nil
}
