package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvent struct {
	BaseDomainEvent
}

func newStubEvent() *stubEvent {
	return &stubEvent{BaseDomainEvent: NewBaseDomainEvent("StubHappened", "Stub", uuid.New())}
}

func TestNewOutboxEntry(t *testing.T) {
	ev := newStubEvent()

	entry := NewOutboxEntry(ev, []byte(`{}`), 0)

	assert.Equal(t, ev.EventID(), entry.EventID)
	assert.Equal(t, "StubHappened", entry.EventType)
	assert.Equal(t, ev.AggregateID(), entry.AggregateID)
	assert.Equal(t, OutboxStatusPending, entry.Status)
	assert.Equal(t, DefaultOutboxMaxRetries, entry.MaxRetries)
	assert.Zero(t, entry.RetryCount)
}

func TestOutboxEntry_MarkProcessing(t *testing.T) {
	t.Run("pending, failed and stale processing entries can be claimed", func(t *testing.T) {
		for _, status := range []OutboxStatus{OutboxStatusPending, OutboxStatusFailed, OutboxStatusProcessing} {
			entry := &OutboxEntry{Status: status}
			require.NoError(t, entry.MarkProcessing())
			assert.Equal(t, OutboxStatusProcessing, entry.Status)
		}
	})

	t.Run("other statuses are rejected", func(t *testing.T) {
		for _, status := range []OutboxStatus{OutboxStatusSent, OutboxStatusDead} {
			entry := &OutboxEntry{Status: status}
			assert.ErrorIs(t, entry.MarkProcessing(), ErrOutboxInvalidTransition)
		}
	})
}

func TestOutboxEntry_MarkFailed(t *testing.T) {
	t.Run("schedules a retry with backoff", func(t *testing.T) {
		entry := NewOutboxEntry(newStubEvent(), nil, 3)
		before := time.Now().UTC()

		entry.MarkFailed("boom")

		assert.Equal(t, OutboxStatusFailed, entry.Status)
		assert.Equal(t, 1, entry.RetryCount)
		assert.Equal(t, "boom", entry.LastError)
		require.NotNil(t, entry.NextRetryAt)
		assert.True(t, entry.NextRetryAt.After(before))

		entry.MarkFailed("boom again")
		require.NotNil(t, entry.NextRetryAt)
		assert.True(t, entry.NextRetryAt.Sub(entry.UpdatedAt) >= 2*DefaultOutboxBackoff)
	})

	t.Run("becomes dead after max retries", func(t *testing.T) {
		entry := NewOutboxEntry(newStubEvent(), nil, 2)
		entry.MarkFailed("one")
		entry.MarkFailed("two")

		assert.True(t, entry.IsDead())
		assert.Nil(t, entry.NextRetryAt)
	})
}

func TestOutboxEntry_MarkSent(t *testing.T) {
	entry := NewOutboxEntry(newStubEvent(), nil, 3)
	entry.MarkFailed("transient")

	entry.MarkSent()

	assert.Equal(t, OutboxStatusSent, entry.Status)
	assert.NotNil(t, entry.ProcessedAt)
	assert.Nil(t, entry.NextRetryAt)
}
