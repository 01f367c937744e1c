package event

import (
	"context"

	"github.com/salesorder/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler writes one info line per delivered event
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a wildcard handler that logs every event
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger.Named("events")}
}

// Handle logs the event envelope
func (h *LoggingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns nil, subscribing to every event
func (h *LoggingHandler) EventTypes() []string {
	return nil
}
