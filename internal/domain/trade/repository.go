package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SalesOrderView is the read-side projection of an order joined with its
// client and the items its lines reference.
type SalesOrderView struct {
	ID              uuid.UUID
	OrderNumber     string
	OrderDate       time.Time
	ClientID        uuid.UUID
	ClientName      string
	InvoiceNumber   string
	InvoiceDate     *time.Time
	ReferenceNumber string
	Notes           string
	Address         valueobject.Address
	TotalExclAmount decimal.Decimal
	TotalTaxAmount  decimal.Decimal
	TotalInclAmount decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	Lines           []SalesOrderLineView
}

// SalesOrderLineView is a line enriched with the referenced item's current catalog data
type SalesOrderLineView struct {
	ID              uuid.UUID
	LineNo          int
	ItemID          uuid.UUID
	ItemCode        string
	ItemDescription string
	ItemPrice       decimal.Decimal
	Note            string
	Quantity        decimal.Decimal
	TaxRate         decimal.Decimal
	UnitPrice       decimal.Decimal
	ExclAmount      decimal.Decimal
	TaxAmount       decimal.Decimal
	InclAmount      decimal.Decimal
}

// SalesOrderRepository persists sales orders together with their lines.
// Every write also stores the aggregate's pending domain events in the outbox
// within the same transaction.
type SalesOrderRepository interface {
	// FindAll returns every order, newest order date first
	FindAll(ctx context.Context) ([]SalesOrderView, error)

	// FindByID returns the enriched order or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrderView, error)

	// FindAggregate loads the order with its lines for modification
	FindAggregate(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// Create inserts the order and its lines atomically.
	// A duplicate order number yields shared.ErrAlreadyExists.
	Create(ctx context.Context, order *SalesOrder) error

	// Replace overwrites the order header and swaps the full line set atomically.
	// Returns shared.ErrNotFound if the order no longer exists.
	Replace(ctx context.Context, order *SalesOrder) error

	// Delete removes the order and its lines, reporting whether it existed
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
