package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSerializer_RegisterUsesEventType(t *testing.T) {
	s := NewEventSerializer()
	s.Register(&pingEvent{})

	assert.True(t, s.IsRegistered("Ping"))
	assert.False(t, s.IsRegistered("Pong"))
	assert.Equal(t, []string{"Ping"}, s.RegisteredTypes())
}

func TestEventSerializer_RoundTrip(t *testing.T) {
	s := NewEventSerializer()
	s.Register(&pingEvent{})
	original := newPingEvent("hello")

	data, err := s.Serialize(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)

	decoded, err := s.Deserialize("Ping", data)
	require.NoError(t, err)

	ping, ok := decoded.(*pingEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), ping.EventID())
	assert.Equal(t, original.AggregateID(), ping.AggregateID())
	assert.Equal(t, "hello", ping.Message)
}

func TestEventSerializer_Deserialize_Errors(t *testing.T) {
	s := NewEventSerializer()
	s.Register(&pingEvent{})

	t.Run("unknown type", func(t *testing.T) {
		_, err := s.Deserialize("Unknown", []byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event type")
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := s.Deserialize("Ping", []byte(`{not json`))
		require.Error(t, err)
	})
}

func TestNewSalesOrderSerializer(t *testing.T) {
	s := NewSalesOrderSerializer()

	assert.Equal(t, []string{
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderDeleted,
		trade.EventTypeSalesOrderUpdated,
	}, s.RegisteredTypes())

	deleted := trade.NewSalesOrderDeletedEvent(uuid.New(), "SO-20240115-ABCDEF12")
	data, err := s.Serialize(deleted)
	require.NoError(t, err)

	decoded, err := s.Deserialize(trade.EventTypeSalesOrderDeleted, data)
	require.NoError(t, err)
	got := decoded.(*trade.SalesOrderDeletedEvent)
	assert.Equal(t, deleted.OrderID, got.OrderID)
	assert.Equal(t, "SO-20240115-ABCDEF12", got.OrderNumber)
}

func TestNewSalesOrderSerializer_KeepsDecimalTotals(t *testing.T) {
	s := NewSalesOrderSerializer()
	created := &trade.SalesOrderCreatedEvent{
		OrderID:         uuid.New(),
		TotalExclAmount: decimal.RequireFromString("200"),
		TotalTaxAmount:  decimal.RequireFromString("20"),
		TotalInclAmount: decimal.RequireFromString("220"),
	}

	data, err := s.Serialize(created)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_incl_amount":"220"`)

	decoded, err := s.Deserialize(trade.EventTypeSalesOrderCreated, data)
	require.NoError(t, err)
	got := decoded.(*trade.SalesOrderCreatedEvent)
	assert.True(t, got.TotalInclAmount.Equal(decimal.NewFromInt(220)))
}
