package event

import (
	"context"
	"sync"
	"time"

	"github.com/salesorder/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OutboxProcessorConfig holds configuration for the outbox processor
type OutboxProcessorConfig struct {
	BatchSize    int
	PollInterval time.Duration
	// ProcessingTimeout is how long a claimed entry may stay PROCESSING before
	// it is handed out again
	ProcessingTimeout time.Duration
	CleanupRetention  time.Duration
	CleanupInterval   time.Duration
}

// DefaultOutboxProcessorConfig returns default configuration
func DefaultOutboxProcessorConfig() OutboxProcessorConfig {
	return OutboxProcessorConfig{
		BatchSize:         100,
		PollInterval:      2 * time.Second,
		ProcessingTimeout: 5 * time.Minute,
		CleanupRetention:  7 * 24 * time.Hour,
		CleanupInterval:   time.Hour,
	}
}

// OutboxProcessor relays outbox entries to the event bus in the background.
// Delivery is at-least-once: a handler may see the same event again after a
// failed attempt, and an entry whose outcome was never recorded (crash, shutdown
// or a failed status write) is delivered again after ProcessingTimeout.
type OutboxProcessor struct {
	repo       shared.OutboxRepository
	bus        shared.EventPublisher
	serializer *EventSerializer
	config     OutboxProcessorConfig
	logger     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOutboxProcessor creates a new outbox processor
func NewOutboxProcessor(
	repo shared.OutboxRepository,
	bus shared.EventPublisher,
	serializer *EventSerializer,
	config OutboxProcessorConfig,
	logger *zap.Logger,
) *OutboxProcessor {
	defaults := DefaultOutboxProcessorConfig()
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.ProcessingTimeout <= 0 {
		config.ProcessingTimeout = defaults.ProcessingTimeout
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}
	return &OutboxProcessor{
		repo:       repo,
		bus:        bus,
		serializer: serializer,
		config:     config,
		logger:     logger,
	}
}

// Start launches the poll loop and, when a retention is configured, the cleanup loop
func (p *OutboxProcessor) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.every(ctx, p.config.PollInterval, func(ctx context.Context) {
		if _, err := p.ProcessOnce(ctx); err != nil {
			p.logger.Error("outbox poll failed", zap.Error(err))
		}
	})

	if p.config.CleanupRetention > 0 {
		p.wg.Add(1)
		go p.every(ctx, p.config.CleanupInterval, p.cleanup)
	}

	p.logger.Info("outbox processor started",
		zap.Int("batch_size", p.config.BatchSize),
		zap.Duration("poll_interval", p.config.PollInterval),
	)
	return nil
}

// Stop cancels the loops and waits for the current batch, bounded by ctx
func (p *OutboxProcessor) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("outbox processor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ProcessOnce delivers one batch of due entries and returns how many were sent
func (p *OutboxProcessor) ProcessOnce(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	entries, err := p.repo.FindDue(ctx, now, now.Add(-p.config.ProcessingTimeout), p.config.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		claimed, err := p.repo.Claim(ctx, entry)
		if err != nil {
			p.logger.Error("failed to claim outbox entry",
				zap.String("event_id", entry.EventID.String()),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}
		if p.deliver(ctx, entry) {
			sent++
		}
	}
	return sent, nil
}

func (p *OutboxProcessor) deliver(ctx context.Context, entry *shared.OutboxEntry) bool {
	fields := []zap.Field{
		zap.String("event_id", entry.EventID.String()),
		zap.String("event_type", entry.EventType),
		zap.String("aggregate_id", entry.AggregateID.String()),
	}

	event, err := p.serializer.Deserialize(entry.EventType, entry.Payload)
	if err == nil {
		err = p.bus.Publish(ctx, event)
	}

	if err != nil {
		entry.MarkFailed(err.Error())
		if entry.IsDead() {
			p.logger.Warn("outbox entry exhausted its retries",
				append(fields, zap.Int("retry_count", entry.RetryCount), zap.Error(err))...)
		} else {
			p.logger.Error("outbox delivery failed",
				append(fields, zap.Int("retry_count", entry.RetryCount), zap.Error(err))...)
		}
	} else {
		entry.MarkSent()
	}

	if uerr := p.repo.Update(ctx, entry); uerr != nil {
		p.logger.Error("failed to record outbox delivery", append(fields, zap.Error(uerr))...)
		return false
	}
	if err == nil {
		p.logger.Debug("outbox entry delivered", fields...)
	}
	return err == nil
}

func (p *OutboxProcessor) cleanup(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-p.config.CleanupRetention)
	deleted, err := p.repo.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error("outbox cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		p.logger.Info("cleaned up sent outbox entries",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
}

func (p *OutboxProcessor) every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
