package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]catalog.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Client), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Client), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func newService() (*CatalogService, *MockClientRepository, *MockItemRepository) {
	clients, items := new(MockClientRepository), new(MockItemRepository)
	return NewCatalogService(clients, items), clients, items
}

func TestCatalogService_Clients(t *testing.T) {
	svc, clients, _ := newService()
	ctx := context.Background()

	client, err := catalog.NewClient("Global Trading Inc",
		valueobject.NewAddress("321 Commerce St", "Unit 200", "", "IL", "60601"), time.Now())
	require.NoError(t, err)
	clients.On("FindAll", ctx).Return([]catalog.Client{*client}, nil)
	clients.On("FindByID", ctx, client.ID).Return(client, nil)
	missing := uuid.New()
	clients.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	list, err := svc.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Global Trading Inc", list[0].Name)
	assert.Equal(t, "Unit 200", list[0].Address2)
	assert.Equal(t, "60601", list[0].PostCode)

	got, err := svc.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)

	_, err = svc.GetClient(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCatalogService_Items(t *testing.T) {
	svc, _, items := newService()
	ctx := context.Background()

	item, err := catalog.NewItem("ITEM004", "Monitor 27 inch", decimal.RequireFromString("299.99"), time.Now())
	require.NoError(t, err)
	items.On("FindAll", ctx).Return([]catalog.Item{*item}, nil)
	items.On("FindByID", ctx, item.ID).Return(item, nil)
	items.On("FindByCode", ctx, "ITEM004").Return(item, nil)
	items.On("FindByCode", ctx, "NOPE").Return(nil, shared.ErrNotFound)

	list, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Price.Equal(decimal.RequireFromString("299.99")))

	byID, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "ITEM004", byID.Code)

	byCode, err := svc.GetItemByCode(ctx, " ITEM004 ")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byCode.ID)

	_, err = svc.GetItemByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.GetItemByCode(ctx, "  ")
	assert.True(t, shared.IsValidationError(err))
	items.AssertNumberOfCalls(t, "FindByCode", 2)
}

func TestCatalogService_PropagatesStoreErrors(t *testing.T) {
	svc, clients, items := newService()
	ctx := context.Background()
	boom := errors.New("connection refused")
	clients.On("FindAll", ctx).Return(nil, boom)
	items.On("FindAll", ctx).Return(nil, boom)

	_, err := svc.ListClients(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.ListItems(ctx)
	assert.ErrorIs(t, err, boom)
}
