package event

import (
	"context"
	"errors"
	"testing"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPingPublisher() *OutboxPublisher {
	s := NewEventSerializer()
	s.Register(&pingEvent{})
	return NewOutboxPublisher(s, 4)
}

func TestOutboxPublisher_SaveEventsWritesPendingEntries(t *testing.T) {
	db := newTestDB(t)
	publisher := newPingPublisher()
	first, second := newPingEvent("one"), newPingEvent("two")

	err := db.Transaction(func(tx *gorm.DB) error {
		return publisher.SaveEvents(context.Background(), tx, first, second)
	})
	require.NoError(t, err)

	var rows []models.OutboxEntryModel
	require.NoError(t, db.Order("created_at ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, shared.OutboxStatusPending, row.Status)
		assert.Equal(t, "Ping", row.EventType)
		assert.Equal(t, "Probe", row.AggregateType)
		assert.Equal(t, 4, row.MaxRetries)
	}
	assert.ElementsMatch(t,
		[]string{first.EventID().String(), second.EventID().String()},
		[]string{rows[0].EventID.String(), rows[1].EventID.String()},
	)
}

func TestOutboxPublisher_RollbackDiscardsEntries(t *testing.T) {
	db := newTestDB(t)
	publisher := newPingPublisher()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := publisher.SaveEvents(context.Background(), tx, newPingEvent("lost")); err != nil {
			return err
		}
		return errors.New("aggregate write failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.OutboxEntryModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOutboxPublisher_SaveEvents_NoEvents(t *testing.T) {
	assert.NoError(t, newPingPublisher().SaveEvents(context.Background(), nil))
}

func TestOutboxPublisher_SaveEvents_RejectsForeignTx(t *testing.T) {
	err := newPingPublisher().SaveEvents(context.Background(), "not a tx", newPingEvent("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "*gorm.DB")
}
