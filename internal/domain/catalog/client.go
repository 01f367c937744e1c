package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
)

const MaxClientNameLength = 200

// Client is a customer that places sales orders.
// Clients are reference data and read-only for order processing.
type Client struct {
	shared.BaseEntity
	Name    string
	Address valueobject.Address
}

// NewClient creates a client stamped at the given time
func NewClient(name string, address valueobject.Address, at time.Time) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("client name cannot be empty")
	}
	if len(name) > MaxClientNameLength {
		return nil, shared.NewValidationError(fmt.Sprintf("client name cannot exceed %d characters", MaxClientNameLength))
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(at),
		Name:       name,
		Address:    address,
	}, nil
}
