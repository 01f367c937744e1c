package event

import (
	"context"
	"fmt"
	"time"

	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOutboxRepository implements shared.OutboxRepository over the outbox_events table
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM-based outbox repository
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Save inserts new entries
func (r *GormOutboxRepository) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*models.OutboxEntryModel, len(entries))
	for i, e := range entries {
		rows[i] = models.OutboxEntryModelFromDomain(e)
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("save outbox entries: %w", err)
	}
	return nil
}

// FindDue returns pending entries, failed entries whose retry time is not after now
// and PROCESSING entries whose claim is older than staleBefore, oldest first.
// A stale claim belongs to a delivery that never recorded its outcome.
func (r *GormOutboxRepository) FindDue(ctx context.Context, now, staleBefore time.Time, limit int) ([]*shared.OutboxEntry, error) {
	var rows []models.OutboxEntryModel
	err := r.db.WithContext(ctx).
		Where("status = ?", shared.OutboxStatusPending).
		Or("status = ? AND next_retry_at <= ?", shared.OutboxStatusFailed, now.UTC()).
		Or("status = ? AND updated_at < ?", shared.OutboxStatusProcessing, staleBefore.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find due outbox entries: %w", err)
	}

	entries := make([]*shared.OutboxEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Claim moves entry to PROCESSING with a conditional update on its current status.
// Reclaiming a stale PROCESSING entry also requires that nobody touched it since it was read.
func (r *GormOutboxRepository) Claim(ctx context.Context, entry *shared.OutboxEntry) (bool, error) {
	from, seen := entry.Status, entry.UpdatedAt
	if err := entry.MarkProcessing(); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.OutboxEntryModel{}).
		Where("id = ? AND status = ?", entry.ID, from)
	if from == shared.OutboxStatusProcessing {
		query = query.Where("updated_at <= ?", seen.UTC())
	}
	result := query.
		Updates(map[string]any{
			"status":     entry.Status,
			"updated_at": entry.UpdatedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("claim outbox entry %s: %w", entry.ID, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Update writes the delivery state of entry
func (r *GormOutboxRepository) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	err := r.db.WithContext(ctx).
		Model(&models.OutboxEntryModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"status":        entry.Status,
			"retry_count":   entry.RetryCount,
			"last_error":    entry.LastError,
			"next_retry_at": entry.NextRetryAt,
			"processed_at":  entry.ProcessedAt,
			"updated_at":    entry.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update outbox entry %s: %w", entry.ID, err)
	}
	return nil
}

// DeleteSentBefore removes delivered entries processed before the cutoff
func (r *GormOutboxRepository) DeleteSentBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", shared.OutboxStatusSent, before.UTC()).
		Delete(&models.OutboxEntryModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete sent outbox entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountByStatus returns the number of entries in each status
func (r *GormOutboxRepository) CountByStatus(ctx context.Context) (map[shared.OutboxStatus]int64, error) {
	var rows []struct {
		Status shared.OutboxStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.OutboxEntryModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count outbox entries: %w", err)
	}

	counts := make(map[shared.OutboxStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

var _ shared.OutboxRepository = (*GormOutboxRepository)(nil)
