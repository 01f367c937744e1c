package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCatalogTTL is used when no TTL is configured
const DefaultCatalogTTL = 10 * time.Minute

// Cache keys. Catalog data has no write path in this service, so entries only
// leave the cache by expiring.
const (
	keyClients        = "catalog:clients"
	keyItems          = "catalog:items"
	keyClientPrefix   = "catalog:client:"
	keyItemPrefix     = "catalog:item:"
	keyItemCodePrefix = "catalog:item-code:"
)

type clientSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address1  string    `json:"address1"`
	Address2  string    `json:"address2"`
	Address3  string    `json:"address3"`
	State     string    `json:"state"`
	PostCode  string    `json:"post_code"`
	CreatedAt time.Time `json:"created_at"`
}

func snapshotClient(c *catalog.Client) clientSnapshot {
	return clientSnapshot{
		ID:        c.ID,
		Name:      c.Name,
		Address1:  c.Address.Address1(),
		Address2:  c.Address.Address2(),
		Address3:  c.Address.Address3(),
		State:     c.Address.State(),
		PostCode:  c.Address.PostCode(),
		CreatedAt: c.CreatedAt,
	}
}

func (s clientSnapshot) restore() catalog.Client {
	return catalog.Client{
		BaseEntity: shared.BaseEntity{ID: s.ID, CreatedAt: s.CreatedAt},
		Name:       s.Name,
		Address:    valueobject.NewAddress(s.Address1, s.Address2, s.Address3, s.State, s.PostCode),
	}
}

type itemSnapshot struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func snapshotItem(i *catalog.Item) itemSnapshot {
	return itemSnapshot{
		ID:          i.ID,
		Code:        i.Code,
		Description: i.Description,
		Price:       i.Price,
		CreatedAt:   i.CreatedAt,
	}
}

func (s itemSnapshot) restore() catalog.Item {
	return catalog.Item{
		BaseEntity:  shared.BaseEntity{ID: s.ID, CreatedAt: s.CreatedAt},
		Code:        s.Code,
		Description: s.Description,
		Price:       s.Price,
	}
}

// readThrough serves key from the store or loads it and stores the result.
// The store is best effort: its failures are logged and the loader answers.
// Loader errors, not-found included, are never cached.
func readThrough[T any](ctx context.Context, store Store, ttl time.Duration, logger *zap.Logger, key string, load func() (T, error)) (T, error) {
	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		logger.Warn("discarding undecodable catalog cache entry", zap.String("key", key))
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err == nil {
		err = store.Set(ctx, key, data, ttl)
	}
	if err != nil {
		logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// CachedClientRepository is a read-through cache in front of a catalog.ClientRepository
type CachedClientRepository struct {
	next   catalog.ClientRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClientRepository wraps next. ttl <= 0 uses DefaultCatalogTTL.
func NewCachedClientRepository(next catalog.ClientRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedClientRepository {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CachedClientRepository{next: next, store: store, ttl: ttl, logger: logger}
}

// FindAll returns every client
func (r *CachedClientRepository) FindAll(ctx context.Context) ([]catalog.Client, error) {
	snaps, err := readThrough(ctx, r.store, r.ttl, r.logger, keyClients, func() ([]clientSnapshot, error) {
		clients, err := r.next.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		snaps := make([]clientSnapshot, len(clients))
		for i := range clients {
			snaps[i] = snapshotClient(&clients[i])
		}
		return snaps, nil
	})
	if err != nil {
		return nil, err
	}

	clients := make([]catalog.Client, len(snaps))
	for i, s := range snaps {
		clients[i] = s.restore()
	}
	return clients, nil
}

// FindByID returns one client or shared.ErrNotFound
func (r *CachedClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	snap, err := readThrough(ctx, r.store, r.ttl, r.logger, keyClientPrefix+id.String(), func() (clientSnapshot, error) {
		client, err := r.next.FindByID(ctx, id)
		if err != nil {
			return clientSnapshot{}, err
		}
		return snapshotClient(client), nil
	})
	if err != nil {
		return nil, err
	}
	client := snap.restore()
	return &client, nil
}

// CachedItemRepository is a read-through cache in front of a catalog.ItemRepository
type CachedItemRepository struct {
	next   catalog.ItemRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedItemRepository wraps next. ttl <= 0 uses DefaultCatalogTTL.
func NewCachedItemRepository(next catalog.ItemRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedItemRepository {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CachedItemRepository{next: next, store: store, ttl: ttl, logger: logger}
}

// FindAll returns every item
func (r *CachedItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	snaps, err := readThrough(ctx, r.store, r.ttl, r.logger, keyItems, func() ([]itemSnapshot, error) {
		items, err := r.next.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		snaps := make([]itemSnapshot, len(items))
		for i := range items {
			snaps[i] = snapshotItem(&items[i])
		}
		return snaps, nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(snaps))
	for i, s := range snaps {
		items[i] = s.restore()
	}
	return items, nil
}

// FindByID returns one item or shared.ErrNotFound
func (r *CachedItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	return r.findOne(ctx, keyItemPrefix+id.String(), func() (*catalog.Item, error) {
		return r.next.FindByID(ctx, id)
	})
}

// FindByCode returns the item with the code or shared.ErrNotFound
func (r *CachedItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	return r.findOne(ctx, keyItemCodePrefix+code, func() (*catalog.Item, error) {
		return r.next.FindByCode(ctx, code)
	})
}

func (r *CachedItemRepository) findOne(ctx context.Context, key string, load func() (*catalog.Item, error)) (*catalog.Item, error) {
	snap, err := readThrough(ctx, r.store, r.ttl, r.logger, key, func() (itemSnapshot, error) {
		item, err := load()
		if err != nil {
			return itemSnapshot{}, err
		}
		return snapshotItem(item), nil
	})
	if err != nil {
		return nil, err
	}
	item := snap.restore()
	return &item, nil
}

var (
	_ catalog.ClientRepository = (*CachedClientRepository)(nil)
	_ catalog.ItemRepository   = (*CachedItemRepository)(nil)
)
