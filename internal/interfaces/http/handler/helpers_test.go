package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/salesorder/backend/internal/application/catalog"
	tradeapp "github.com/salesorder/backend/internal/application/trade"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/salesorder/backend/internal/infrastructure/event"
	"github.com/salesorder/backend/internal/infrastructure/persistence"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"github.com/salesorder/backend/internal/interfaces/http/dto"
	"github.com/salesorder/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const ordersPath = "/api/v1/sales-orders"

type apiFixture struct {
	router *gin.Engine
	db     *gorm.DB
	client *catalog.Client
	item   *catalog.Item
}

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

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db := newTestDB(t)
	client, err := catalog.NewClient("ABC Corporation", valueobject.NewAddress("123 Main St", "Suite 100", "", "NY", "10001"), time.Now())
	require.NoError(t, err)
	item, err := catalog.NewItem("ITEM100", "Widget", decimal.RequireFromString("100.00"), time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Create(models.ClientModelFromDomain(client)).Error)
	require.NoError(t, db.Create(models.ItemModelFromDomain(item)).Error)

	clients := persistence.NewGormClientRepository(db)
	items := persistence.NewGormItemRepository(db)
	orders := persistence.NewGormSalesOrderRepository(db, event.NewOutboxPublisher(event.NewSalesOrderSerializer(), 5))

	r := gin.New()
	r.Use(middleware.RequestID())
	v1 := r.Group("/api/v1")

	so := NewSalesOrderHandler(tradeapp.NewSalesOrderService(orders, clients, items, zap.NewNop()))
	v1.GET("/sales-orders", so.List)
	v1.GET("/sales-orders/:id", so.Get)
	v1.POST("/sales-orders", so.Create)
	v1.PUT("/sales-orders/:id", so.Update)
	v1.DELETE("/sales-orders/:id", so.Delete)

	cat := NewCatalogHandler(catalogapp.NewCatalogService(clients, items))
	v1.GET("/clients", cat.ListClients)
	v1.GET("/clients/:id", cat.GetClient)
	v1.GET("/items", cat.ListItems)
	v1.GET("/items/:id", cat.GetItem)
	v1.GET("/items/code/:code", cat.GetItemByCode)

	return &apiFixture{router: r, db: db, client: client, item: item}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.RequestIDHeader, "test-request")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// envelope decodes a response whose data is T
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decode[json.RawMessage](t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	require.Equal(t, "test-request", env.Error.RequestID)
}
