package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindAll returns every item ordered by code
func (r *GormItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	var rows []models.ItemModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list items", err)
	}

	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// FindByID returns the item or shared.ErrNotFound
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var row models.ItemModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError("find item", err)
	}
	return row.ToDomain(), nil
}

// FindByCode returns the item with the exact code or shared.ErrNotFound
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var row models.ItemModel
	if err := r.db.WithContext(ctx).First(&row, "code = ?", code).Error; err != nil {
		return nil, translateError("find item by code", err)
	}
	return row.ToDomain(), nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
