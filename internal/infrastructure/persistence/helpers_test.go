package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/salesorder/backend/internal/infrastructure/event"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with foreign keys enforced
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func insertClient(t *testing.T, db *gorm.DB, name string) *catalog.Client {
	t.Helper()
	client, err := catalog.NewClient(name, valueobject.NewAddress("1 High St", "", "", "NY", "10001"), time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Create(models.ClientModelFromDomain(client)).Error)
	return client
}

func insertItem(t *testing.T, db *gorm.DB, code, price string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(code, code+" description", dec(price), time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Create(models.ItemModelFromDomain(item)).Error)
	return item
}

func newOrder(t *testing.T, number string, at time.Time, clientID uuid.UUID, lines ...trade.LineInput) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(number, at, trade.OrderDetails{
		ClientID: clientID,
		Address:  valueobject.NewAddress("9 Ship Rd", "", "", "CA", "90001"),
	}, lines)
	require.NoError(t, err)
	return order
}

func newSalesOrderRepo(db *gorm.DB) *GormSalesOrderRepository {
	return NewGormSalesOrderRepository(db, event.NewOutboxPublisher(event.NewSalesOrderSerializer(), 5))
}

func outboxTypes(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var rows []models.OutboxEntryModel
	require.NoError(t, db.Order("created_at ASC").Find(&rows).Error)
	types := make([]string, len(rows))
	for i, r := range rows {
		types[i] = r.EventType
	}
	return types
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// failingOutbox rejects every save so tests can observe rollback
type failingOutbox struct{}

func (failingOutbox) SaveEvents(ctx context.Context, tx any, events ...shared.DomainEvent) error {
	return errors.New("outbox unavailable")
}
