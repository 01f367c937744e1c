package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/infrastructure/persistence"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OutboxCounter reports outbox entries per status
type OutboxCounter interface {
	CountByStatus(ctx context.Context) (map[shared.OutboxStatus]int64, error)
}

// PoolStatsSource reports connection pool statistics
type PoolStatsSource interface {
	Stats() (persistence.ConnectionStats, error)
}

var outboxStatuses = []shared.OutboxStatus{
	shared.OutboxStatusPending,
	shared.OutboxStatusProcessing,
	shared.OutboxStatusSent,
	shared.OutboxStatusFailed,
	shared.OutboxStatusDead,
}

// RegisterOperationalGauges exposes the outbox backlog and the connection pool
// as observable gauges. Values are read on every collection.
func RegisterOperationalGauges(meter metric.Meter, outbox OutboxCounter, pool PoolStatsSource) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	entries, err := meter.Int64ObservableGauge("outbox_entries",
		metric.WithDescription("Number of outbox entries by status"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge outbox_entries: %w", err)
	}
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Number of connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	connsMax, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}

	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		var errs []error

		counts, err := outbox.CountByStatus(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("count outbox entries: %w", err))
		} else {
			for _, s := range outboxStatuses {
				o.ObserveInt64(entries, counts[s], metric.WithAttributes(attribute.String("status", string(s))))
			}
		}

		stats, err := pool.Stats()
		if err != nil {
			errs = append(errs, fmt.Errorf("read pool stats: %w", err))
		} else {
			o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(attribute.String("state", "in_use")))
			o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(attribute.String("state", "idle")))
			o.ObserveInt64(connsMax, int64(stats.MaxOpenConnections))
		}

		return errors.Join(errs...)
	}, entries, conns, connsMax)
}
