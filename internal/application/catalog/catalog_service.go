// Package catalog serves the read-only client and item lookups.
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared"
)

// CatalogService exposes clients and items for order entry
type CatalogService struct {
	clients catalog.ClientRepository
	items   catalog.ItemRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(clients catalog.ClientRepository, items catalog.ItemRepository) *CatalogService {
	return &CatalogService{clients: clients, items: items}
}

// ListClients returns every client ordered by name
func (s *CatalogService) ListClients(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out, nil
}

// GetClient returns one client or shared.ErrNotFound
func (s *CatalogService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := ToClientResponse(client)
	return &r, nil
}

// ListItems returns every item ordered by code
func (s *CatalogService) ListItems(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, nil
}

// GetItem returns one item or shared.ErrNotFound
func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := ToItemResponse(item)
	return &r, nil
}

// GetItemByCode looks an item up by its unique code
func (s *CatalogService) GetItemByCode(ctx context.Context, code string) (*ItemResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewValidationError("item code is required")
	}
	item, err := s.items.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r := ToItemResponse(item)
	return &r, nil
}
