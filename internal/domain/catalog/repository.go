package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository provides read access to clients.
// FindByID returns shared.ErrNotFound for an unknown id.
type ClientRepository interface {
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
}

// ItemRepository provides read access to catalog items.
// Lookups return shared.ErrNotFound when nothing matches.
type ItemRepository interface {
	FindAll(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
}
