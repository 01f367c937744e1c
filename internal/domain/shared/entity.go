package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
}

// BaseEntity carries the identity and creation timestamp every entity has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// NewBaseEntity creates a base entity with a generated ID stamped at the given time
func NewBaseEntity(at time.Time) BaseEntity {
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: at.UTC(),
	}
}
