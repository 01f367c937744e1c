package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormSalesOrderRepository_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "ABC Corporation")
	laptop := insertItem(t, db, "ITEM001", "100.00")
	mouse := insertItem(t, db, "ITEM002", "29.99")

	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	order := newOrder(t, "SO-20240115-0000AAAA", at, client.ID,
		trade.LineInput{ItemID: laptop.ID, Quantity: dec("2"), TaxRate: dec("10"), UnitPrice: laptop.Price},
		trade.LineInput{ItemID: mouse.ID, Note: "gift wrap", Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: mouse.Price},
	)

	require.NoError(t, repo.Create(ctx, order))
	assert.Empty(t, order.GetDomainEvents(), "stored events are cleared from the aggregate")

	view, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, "SO-20240115-0000AAAA", view.OrderNumber)
	assert.True(t, view.OrderDate.Equal(at))
	assert.Equal(t, "ABC Corporation", view.ClientName)
	assert.Equal(t, "9 Ship Rd", view.Address.Address1())
	assert.True(t, view.TotalExclAmount.Equal(dec("229.99")), view.TotalExclAmount.String())
	assert.True(t, view.TotalTaxAmount.Equal(dec("20")), view.TotalTaxAmount.String())
	assert.True(t, view.TotalInclAmount.Equal(dec("249.99")), view.TotalInclAmount.String())
	assert.Nil(t, view.UpdatedAt)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, 1, view.Lines[0].LineNo)
	assert.Equal(t, "ITEM001", view.Lines[0].ItemCode)
	assert.Equal(t, "ITEM001 description", view.Lines[0].ItemDescription)
	assert.True(t, view.Lines[0].ItemPrice.Equal(dec("100")))
	assert.Equal(t, 2, view.Lines[1].LineNo)
	assert.Equal(t, "ITEM002", view.Lines[1].ItemCode)
	assert.Equal(t, "gift wrap", view.Lines[1].Note)

	assert.Equal(t, []string{trade.EventTypeSalesOrderCreated}, outboxTypes(t, db))
}

func TestGormSalesOrderRepository_TwoHundredTwentyScenario(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Scenario Client")
	item := insertItem(t, db, "SCN", "100.00")

	order := newOrder(t, "SO-20240101-SCENARIO", time.Now(), client.ID,
		trade.LineInput{ItemID: item.ID, Quantity: dec("2"), TaxRate: dec("10"), UnitPrice: item.Price},
	)
	require.NoError(t, repo.Create(ctx, order))

	view, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)

	line := view.Lines[0]
	assert.True(t, line.ExclAmount.Equal(dec("200")))
	assert.True(t, line.TaxAmount.Equal(dec("20")))
	assert.True(t, line.InclAmount.Equal(dec("220")))
	assert.True(t, view.TotalInclAmount.Equal(dec("220")))
}

func TestGormSalesOrderRepository_Create_UnknownReference(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Real Client")

	order := newOrder(t, "SO-20240101-BADITEM0", time.Now(), client.ID,
		trade.LineInput{ItemID: uuid.New(), Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: dec("5")},
	)

	err := repo.Create(ctx, order)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrReferenceNotFound)
	assert.True(t, shared.IsValidationError(err))
	assert.Zero(t, countRows(t, db, &models.SalesOrderModel{}), "the header is rolled back with the lines")
	assert.Zero(t, countRows(t, db, &models.OutboxEntryModel{}))
}

func TestGormSalesOrderRepository_Create_OutboxFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormSalesOrderRepository(db, failingOutbox{})
	client := insertClient(t, db, "Client")
	item := insertItem(t, db, "I1", "1")

	order := newOrder(t, "SO-20240101-ROLLBACK", time.Now(), client.ID,
		trade.LineInput{ItemID: item.ID, Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: item.Price},
	)

	err := repo.Create(ctx, order)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outbox unavailable")
	assert.Zero(t, countRows(t, db, &models.SalesOrderModel{}))
	assert.Zero(t, countRows(t, db, &models.SalesOrderLineModel{}))
}

func TestGormSalesOrderRepository_Create_DuplicateOrderNumber(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Client")

	require.NoError(t, repo.Create(ctx, newOrder(t, "SO-20240101-DUPLICAT", time.Now(), client.ID)))

	err := repo.Create(ctx, newOrder(t, "SO-20240101-DUPLICAT", time.Now(), client.ID))

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, int64(1), countRows(t, db, &models.SalesOrderModel{}))
}

func TestGormSalesOrderRepository_Replace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "First Client")
	other := insertClient(t, db, "Second Client")
	a := insertItem(t, db, "A", "10")
	b := insertItem(t, db, "B", "20")
	c := insertItem(t, db, "C", "30")

	createdAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	order := newOrder(t, "SO-20240301-REPLACE0", createdAt, client.ID,
		trade.LineInput{ItemID: a.ID, Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: a.Price},
		trade.LineInput{ItemID: b.ID, Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: b.Price},
	)
	require.NoError(t, repo.Create(ctx, order))

	loaded, err := repo.FindAggregate(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)

	modifiedAt := createdAt.Add(2 * time.Hour)
	require.NoError(t, loaded.Revise(trade.OrderDetails{
		ClientID:      other.ID,
		InvoiceNumber: "INV-9",
		Notes:         "rush",
		Address:       valueobject.NewAddress("77 New Rd", "", "", "IL", "60601"),
	}, []trade.LineInput{
		{ItemID: c.ID, Quantity: dec("3"), TaxRate: dec("10"), UnitPrice: c.Price},
	}, modifiedAt))
	require.NoError(t, repo.Replace(ctx, loaded))

	view, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "SO-20240301-REPLACE0", view.OrderNumber)
	assert.True(t, view.OrderDate.Equal(createdAt))
	assert.True(t, view.CreatedAt.Equal(createdAt))
	require.NotNil(t, view.UpdatedAt)
	assert.True(t, view.UpdatedAt.Equal(modifiedAt))
	assert.Equal(t, "Second Client", view.ClientName)
	assert.Equal(t, "INV-9", view.InvoiceNumber)
	assert.Equal(t, "77 New Rd", view.Address.Address1())

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "C", view.Lines[0].ItemCode)
	assert.True(t, view.TotalExclAmount.Equal(dec("90")))
	assert.True(t, view.TotalTaxAmount.Equal(dec("9")))
	assert.True(t, view.TotalInclAmount.Equal(dec("99")))
	assert.Equal(t, int64(1), countRows(t, db, &models.SalesOrderLineModel{}), "old lines are gone")

	assert.Equal(t, []string{trade.EventTypeSalesOrderCreated, trade.EventTypeSalesOrderUpdated}, outboxTypes(t, db))
}

func TestGormSalesOrderRepository_Replace_Missing(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Client")

	ghost := newOrder(t, "SO-20240101-GHOST000", time.Now(), client.ID)

	err := repo.Replace(ctx, ghost)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Zero(t, countRows(t, db, &models.OutboxEntryModel{}))
}

func TestGormSalesOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Client")
	item := insertItem(t, db, "X", "1")

	order := newOrder(t, "SO-20240101-DELETE00", time.Now(), client.ID,
		trade.LineInput{ItemID: item.ID, Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: item.Price},
	)
	require.NoError(t, repo.Create(ctx, order))

	deleted, err := repo.Delete(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, countRows(t, db, &models.SalesOrderModel{}))
	assert.Zero(t, countRows(t, db, &models.SalesOrderLineModel{}))
	assert.Equal(t, []string{trade.EventTypeSalesOrderCreated, trade.EventTypeSalesOrderDeleted}, outboxTypes(t, db))

	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	deleted, err = repo.Delete(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGormSalesOrderRepository_RestrictsCatalogDeletes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Client")
	item := insertItem(t, db, "KEEP", "1")

	order := newOrder(t, "SO-20240101-RESTRICT", time.Now(), client.ID,
		trade.LineInput{ItemID: item.ID, Quantity: dec("1"), TaxRate: dec("0"), UnitPrice: item.Price},
	)
	require.NoError(t, repo.Create(ctx, order))

	assert.Error(t, db.Delete(&models.ItemModel{}, "id = ?", item.ID).Error)
	assert.Error(t, db.Delete(&models.ClientModel{}, "id = ?", client.ID).Error)
	assert.Equal(t, int64(1), countRows(t, db, &models.ItemModel{}))
}

func TestGormSalesOrderRepository_FindAll_NewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Client")

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newOrder(t, "SO-20240501-OLDEST00", base, client.ID)))
	require.NoError(t, repo.Create(ctx, newOrder(t, "SO-20240503-NEWEST00", base.Add(48*time.Hour), client.ID)))
	require.NoError(t, repo.Create(ctx, newOrder(t, "SO-20240502-MIDDLE00", base.Add(24*time.Hour), client.ID)))

	views, err := repo.FindAll(ctx)
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.Equal(t, "SO-20240503-NEWEST00", views[0].OrderNumber)
	assert.Equal(t, "SO-20240502-MIDDLE00", views[1].OrderNumber)
	assert.Equal(t, "SO-20240501-OLDEST00", views[2].OrderNumber)
	for _, v := range views {
		assert.Equal(t, "Client", v.ClientName)
		assert.Empty(t, v.Lines)
	}
}

func TestGormSalesOrderRepository_StoredLinesSumToStoredTotals(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := newSalesOrderRepo(db)
	client := insertClient(t, db, "Penny Traders")
	cent := insertItem(t, db, "CENT", "0.01")

	order := newOrder(t, "SO-20240101-PENNIES", time.Now(), client.ID,
		trade.LineInput{ItemID: cent.ID, Quantity: dec("1"), TaxRate: dec("12.5"), UnitPrice: cent.Price},
		trade.LineInput{ItemID: cent.ID, Quantity: dec("1"), TaxRate: dec("12.5"), UnitPrice: cent.Price},
	)
	require.NoError(t, repo.Create(ctx, order))

	view, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	var excl, tax, incl = dec("0"), dec("0"), dec("0")
	for _, l := range view.Lines {
		assert.True(t, l.TaxAmount.Equal(dec("0.0013")), l.TaxAmount.String())
		excl = excl.Add(l.ExclAmount)
		tax = tax.Add(l.TaxAmount)
		incl = incl.Add(l.InclAmount)
	}
	assert.True(t, view.TotalExclAmount.Equal(excl), "excl %s != %s", view.TotalExclAmount, excl)
	assert.True(t, view.TotalTaxAmount.Equal(tax), "tax %s != %s", view.TotalTaxAmount, tax)
	assert.True(t, view.TotalInclAmount.Equal(incl), "incl %s != %s", view.TotalInclAmount, incl)
	assert.True(t, view.TotalTaxAmount.Equal(dec("0.0026")), view.TotalTaxAmount.String())
}

func TestGormSalesOrderRepository_Replace_CheckViolation_Postgres(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := newSalesOrderRepo(gormDB)
	order := newOrder(t, "SO-20240101-CHECK001", time.Now(), uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "sales_orders" SET`).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: "new row violates check constraint"})
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), order)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.ErrorIs(t, err, gorm.ErrCheckConstraintViolated)
	assert.True(t, shared.IsValidationError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
