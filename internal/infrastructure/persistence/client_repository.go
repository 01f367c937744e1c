package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements catalog.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindAll returns every client ordered by name
func (r *GormClientRepository) FindAll(ctx context.Context) ([]catalog.Client, error) {
	var rows []models.ClientModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list clients", err)
	}

	clients := make([]catalog.Client, len(rows))
	for i := range rows {
		clients[i] = *rows[i].ToDomain()
	}
	return clients, nil
}

// FindByID returns the client or shared.ErrNotFound
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	var row models.ClientModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError("find client", err)
	}
	return row.ToDomain(), nil
}

var _ catalog.ClientRepository = (*GormClientRepository)(nil)
