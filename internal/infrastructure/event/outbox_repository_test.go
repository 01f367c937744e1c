package event

import (
	"context"
	"testing"
	"time"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, msg string) *shared.OutboxEntry {
	t.Helper()
	event := newPingEvent(msg)
	payload, err := NewEventSerializer().Serialize(event)
	require.NoError(t, err)
	return shared.NewOutboxEntry(event, payload, 3)
}

func TestGormOutboxRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	now := time.Now().UTC()

	pending := newEntry(t, "pending")
	retryNow := newEntry(t, "retry-now")
	retryNow.MarkFailed("transient")
	past := now.Add(-time.Minute)
	retryNow.NextRetryAt = &past
	retryLater := newEntry(t, "retry-later")
	retryLater.MarkFailed("transient")
	future := now.Add(time.Hour)
	retryLater.NextRetryAt = &future
	sent := newEntry(t, "sent")
	sent.MarkSent()

	require.NoError(t, repo.Save(ctx, pending, retryNow, retryLater, sent))

	due, err := repo.FindDue(ctx, now, now.Add(-time.Minute), 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(due))
	for _, e := range due {
		ids = append(ids, e.ID.String())
	}
	assert.ElementsMatch(t, []string{pending.ID.String(), retryNow.ID.String()}, ids)
}

func TestGormOutboxRepository_FindDue_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	require.NoError(t, repo.Save(ctx, newEntry(t, "a"), newEntry(t, "b"), newEntry(t, "c")))

	due, err := repo.FindDue(ctx, time.Now().UTC(), time.Now().UTC().Add(-time.Minute), 2)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestGormOutboxRepository_ClaimIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	entry := newEntry(t, "claim")
	require.NoError(t, repo.Save(ctx, entry))

	first, err := repo.FindDue(ctx, time.Now().UTC(), time.Now().UTC().Add(-time.Minute), 1)
	require.NoError(t, err)
	second, err := repo.FindDue(ctx, time.Now().UTC(), time.Now().UTC().Add(-time.Minute), 1)
	require.NoError(t, err)

	ok, err := repo.Claim(ctx, first[0])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Claim(ctx, second[0])
	require.NoError(t, err)
	assert.False(t, ok, "a stale copy must not claim the entry again")
}

func TestGormOutboxRepository_ReclaimsStaleProcessing(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	now := time.Now().UTC()

	stale := newEntry(t, "stale")
	require.NoError(t, stale.MarkProcessing())
	stale.UpdatedAt = now.Add(-10 * time.Minute)
	fresh := newEntry(t, "fresh")
	require.NoError(t, fresh.MarkProcessing())
	require.NoError(t, repo.Save(ctx, stale, fresh))

	due, err := repo.FindDue(ctx, now, now.Add(-5*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, due, 1, "only the abandoned claim is handed out again")
	assert.Equal(t, stale.ID, due[0].ID)

	again, err := repo.FindDue(ctx, now, now.Add(-5*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, again, 1)

	ok, err := repo.Claim(ctx, due[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, shared.OutboxStatusProcessing, due[0].Status)

	ok, err = repo.Claim(ctx, again[0])
	require.NoError(t, err)
	assert.False(t, ok, "a reclaimed entry cannot be claimed twice")

	left, err := repo.FindDue(ctx, now, now.Add(-5*time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, left, "the new claim is fresh")
}

func TestGormOutboxRepository_UpdateAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	a, b, c := newEntry(t, "a"), newEntry(t, "b"), newEntry(t, "c")
	require.NoError(t, repo.Save(ctx, a, b, c))

	a.MarkSent()
	require.NoError(t, repo.Update(ctx, a))
	b.MarkFailed("nope")
	require.NoError(t, repo.Update(ctx, b))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusSent])
	assert.Equal(t, int64(1), counts[shared.OutboxStatusFailed])
	assert.Equal(t, int64(1), counts[shared.OutboxStatusPending])
}

func TestGormOutboxRepository_DeleteSentBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOutboxRepository(newTestDB(t))
	old, recent, pending := newEntry(t, "old"), newEntry(t, "recent"), newEntry(t, "pending")
	old.MarkSent()
	longAgo := time.Now().UTC().Add(-48 * time.Hour)
	old.ProcessedAt = &longAgo
	recent.MarkSent()
	require.NoError(t, repo.Save(ctx, old, recent, pending))

	deleted, err := repo.DeleteSentBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusSent])
	assert.Equal(t, int64(1), counts[shared.OutboxStatusPending])
}
