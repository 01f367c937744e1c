package trade

import (
	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderCreated = "SalesOrderCreated"
	EventTypeSalesOrderUpdated = "SalesOrderUpdated"
	EventTypeSalesOrderDeleted = "SalesOrderDeleted"
)

// SalesOrderCreatedEvent is raised when a new sales order is stored
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	ClientID        uuid.UUID       `json:"client_id"`
	LineCount       int             `json:"line_count"`
	TotalExclAmount decimal.Decimal `json:"total_excl_amount"`
	TotalTaxAmount  decimal.Decimal `json:"total_tax_amount"`
	TotalInclAmount decimal.Decimal `json:"total_incl_amount"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		LineCount:       order.LineCount(),
		TotalExclAmount: order.TotalExclAmount,
		TotalTaxAmount:  order.TotalTaxAmount,
		TotalInclAmount: order.TotalInclAmount,
	}
}

// EventType returns the event type name
func (e *SalesOrderCreatedEvent) EventType() string {
	return EventTypeSalesOrderCreated
}

// SalesOrderUpdatedEvent is raised when an order's fields and lines are replaced
type SalesOrderUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	ClientID        uuid.UUID       `json:"client_id"`
	LineCount       int             `json:"line_count"`
	TotalExclAmount decimal.Decimal `json:"total_excl_amount"`
	TotalTaxAmount  decimal.Decimal `json:"total_tax_amount"`
	TotalInclAmount decimal.Decimal `json:"total_incl_amount"`
}

// NewSalesOrderUpdatedEvent creates a new SalesOrderUpdatedEvent
func NewSalesOrderUpdatedEvent(order *SalesOrder) *SalesOrderUpdatedEvent {
	return &SalesOrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderUpdated, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		LineCount:       order.LineCount(),
		TotalExclAmount: order.TotalExclAmount,
		TotalTaxAmount:  order.TotalTaxAmount,
		TotalInclAmount: order.TotalInclAmount,
	}
}

// EventType returns the event type name
func (e *SalesOrderUpdatedEvent) EventType() string {
	return EventTypeSalesOrderUpdated
}

// SalesOrderDeletedEvent is raised when an order and its lines are removed
type SalesOrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewSalesOrderDeletedEvent creates a new SalesOrderDeletedEvent
func NewSalesOrderDeletedEvent(orderID uuid.UUID, orderNumber string) *SalesOrderDeletedEvent {
	return &SalesOrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderDeleted, AggregateTypeSalesOrder, orderID),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
	}
}

// EventType returns the event type name
func (e *SalesOrderDeletedEvent) EventType() string {
	return EventTypeSalesOrderDeleted
}
