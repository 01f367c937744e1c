package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus is the delivery state of an outbox entry
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusSent       OutboxStatus = "SENT"
	OutboxStatusFailed     OutboxStatus = "FAILED"
	OutboxStatusDead       OutboxStatus = "DEAD"
)

const (
	DefaultOutboxMaxRetries = 5
	DefaultOutboxBackoff    = time.Second
)

var ErrOutboxInvalidTransition = errors.New("outbox: invalid status transition")

// OutboxEntry is a serialized domain event awaiting delivery to the event bus
type OutboxEntry struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	Payload       []byte
	Status        OutboxStatus
	RetryCount    int
	MaxRetries    int
	LastError     string
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOutboxEntry wraps a serialized event in a pending outbox entry
func NewOutboxEntry(event DomainEvent, payload []byte, maxRetries int) *OutboxEntry {
	if maxRetries <= 0 {
		maxRetries = DefaultOutboxMaxRetries
	}
	now := time.Now().UTC()
	return &OutboxEntry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		Payload:       payload,
		Status:        OutboxStatusPending,
		MaxRetries:    maxRetries,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MarkProcessing claims the entry for delivery. A PROCESSING entry may be
// claimed again once its previous claim went stale.
func (e *OutboxEntry) MarkProcessing() error {
	switch e.Status {
	case OutboxStatusPending, OutboxStatusFailed, OutboxStatusProcessing:
	default:
		return ErrOutboxInvalidTransition
	}
	e.Status = OutboxStatusProcessing
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkSent records a successful delivery
func (e *OutboxEntry) MarkSent() {
	now := time.Now().UTC()
	e.Status = OutboxStatusSent
	e.ProcessedAt = &now
	e.NextRetryAt = nil
	e.UpdatedAt = now
}

// MarkFailed records a failed delivery. The entry is retried with exponential
// backoff until MaxRetries is reached, after which it is dead.
func (e *OutboxEntry) MarkFailed(errMsg string) {
	now := time.Now().UTC()
	e.RetryCount++
	e.LastError = errMsg
	e.UpdatedAt = now

	if e.RetryCount >= e.MaxRetries {
		e.Status = OutboxStatusDead
		e.NextRetryAt = nil
		return
	}
	e.Status = OutboxStatusFailed
	next := now.Add(DefaultOutboxBackoff << uint(e.RetryCount-1))
	e.NextRetryAt = &next
}

// IsDead reports whether the entry exhausted its retries
func (e *OutboxEntry) IsDead() bool {
	return e.Status == OutboxStatusDead
}

// OutboxRepository persists outbox entries
type OutboxRepository interface {
	Save(ctx context.Context, entries ...*OutboxEntry) error
	// FindDue returns pending entries, failed entries whose retry time has passed
	// and entries left in PROCESSING since before staleBefore
	FindDue(ctx context.Context, now, staleBefore time.Time, limit int) ([]*OutboxEntry, error)
	// Claim moves a due entry to PROCESSING. It reports false when another
	// worker claimed the entry first.
	Claim(ctx context.Context, entry *OutboxEntry) (bool, error)
	Update(ctx context.Context, entry *OutboxEntry) error
	DeleteSentBefore(ctx context.Context, before time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[OutboxStatus]int64, error)
}
