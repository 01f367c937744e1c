package event

import "github.com/salesorder/backend/internal/domain/trade"

// RegisterSalesOrderEvents makes the sales order events readable from the outbox
func RegisterSalesOrderEvents(s *EventSerializer) {
	s.Register(
		&trade.SalesOrderCreatedEvent{},
		&trade.SalesOrderUpdatedEvent{},
		&trade.SalesOrderDeletedEvent{},
	)
}

// NewSalesOrderSerializer returns a serializer with every sales order event registered
func NewSalesOrderSerializer() *EventSerializer {
	s := NewEventSerializer()
	RegisterSalesOrderEvents(s)
	return s
}
