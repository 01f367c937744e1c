package event

import (
	"context"
	"fmt"

	"github.com/salesorder/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OutboxPublisher writes domain events into the outbox table of the
// transaction that persists the aggregate, so both commit or neither does.
type OutboxPublisher struct {
	serializer *EventSerializer
	maxRetries int
}

// NewOutboxPublisher creates an outbox publisher. maxRetries <= 0 uses the default.
func NewOutboxPublisher(serializer *EventSerializer, maxRetries int) *OutboxPublisher {
	return &OutboxPublisher{
		serializer: serializer,
		maxRetries: maxRetries,
	}
}

// PublishWithTx serializes events and inserts them using tx
func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return err
		}
		entries = append(entries, shared.NewOutboxEntry(event, payload, p.maxRetries))
	}

	return NewGormOutboxRepository(tx).Save(ctx, entries...)
}

// SaveEvents implements shared.OutboxEventSaver; tx must be a *gorm.DB
func (p *OutboxPublisher) SaveEvents(ctx context.Context, tx any, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	db, ok := tx.(*gorm.DB)
	if !ok {
		return fmt.Errorf("outbox publisher: tx must be *gorm.DB, got %T", tx)
	}
	return p.PublishWithTx(ctx, db, events...)
}

var _ shared.OutboxEventSaver = (*OutboxPublisher)(nil)
