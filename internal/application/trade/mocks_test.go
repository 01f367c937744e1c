package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context) ([]trade.SalesOrderView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrderView), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrderView, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(uuid.UUID) *trade.SalesOrderView); ok {
		return fn(id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrderView), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAggregate(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Create(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockSalesOrderRepository) Replace(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockClientRepository is a mock implementation of catalog.ClientRepository
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

// MockItemRepository is a mock implementation of catalog.ItemRepository
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

// sequenceGenerator hands out the given numbers in order
type sequenceGenerator struct {
	numbers []string
	next    int
}

func (g *sequenceGenerator) Next(time.Time) string {
	n := g.numbers[g.next%len(g.numbers)]
	g.next++
	return n
}
