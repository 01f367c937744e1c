package telemetry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope for business metrics
const MeterName = "sales-order-service"

// seenWindow bounds how many recent event IDs are remembered for dedupe
const seenWindow = 4096

// SalesMetrics counts order lifecycle events delivered by the event bus.
// The outbox redelivers an event to every handler when any of them fails,
// so events already counted in the recent window are skipped.
type SalesMetrics struct {
	created *Counter
	updated *Counter
	deleted *Counter
	amount  *FloatCounter
	seen    *recentIDs
}

// recentIDs remembers the last size IDs in insertion order
type recentIDs struct {
	mu    sync.Mutex
	ids   map[uuid.UUID]struct{}
	order []uuid.UUID
	next  int
}

func newRecentIDs(size int) *recentIDs {
	return &recentIDs{ids: make(map[uuid.UUID]struct{}, size), order: make([]uuid.UUID, size)}
}

// add records id and reports whether it was new
func (r *recentIDs) add(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return false
	}
	if old := r.order[r.next]; old != uuid.Nil {
		delete(r.ids, old)
	}
	r.order[r.next] = id
	r.next = (r.next + 1) % len(r.order)
	r.ids[id] = struct{}{}
	return true
}

// NewSalesMetrics creates the sales order instruments on meter
func NewSalesMetrics(meter metric.Meter) (*SalesMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	created, err := NewCounter(meter, "sales_orders_created_total", "Number of sales orders created", "{order}")
	if err != nil {
		return nil, err
	}
	updated, err := NewCounter(meter, "sales_orders_updated_total", "Number of sales orders updated", "{order}")
	if err != nil {
		return nil, err
	}
	deleted, err := NewCounter(meter, "sales_orders_deleted_total", "Number of sales orders deleted", "{order}")
	if err != nil {
		return nil, err
	}
	amount, err := NewFloatCounter(meter, "sales_orders_amount_total", "Tax inclusive amount of created sales orders", "1")
	if err != nil {
		return nil, err
	}

	return &SalesMetrics{
		created: created,
		updated: updated,
		deleted: deleted,
		amount:  amount,
		seen:    newRecentIDs(seenWindow),
	}, nil
}

// Handle records one event
func (m *SalesMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !m.seen.add(event.EventID()) {
		return nil
	}
	switch e := event.(type) {
	case *trade.SalesOrderCreatedEvent:
		m.created.Inc(ctx)
		m.amount.Add(ctx, e.TotalInclAmount.InexactFloat64())
	case *trade.SalesOrderUpdatedEvent:
		m.updated.Inc(ctx)
	case *trade.SalesOrderDeletedEvent:
		m.deleted.Inc(ctx)
	}
	return nil
}

// EventTypes returns the sales order event types
func (m *SalesMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderUpdated,
		trade.EventTypeSalesOrderDeleted,
	}
}

var _ shared.EventHandler = (*SalesMetrics)(nil)
