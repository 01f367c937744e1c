package router

import (
	"github.com/gin-gonic/gin"
	"github.com/salesorder/backend/internal/infrastructure/config"
	"github.com/salesorder/backend/internal/infrastructure/logger"
	"github.com/salesorder/backend/internal/interfaces/http/handler"
	"github.com/salesorder/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers mounted by NewEngine
type Handlers struct {
	SalesOrders *handler.SalesOrderHandler
	Catalog     *handler.CatalogHandler
	Health      *handler.HealthHandler
}

// EngineConfig carries the settings NewEngine needs
type EngineConfig struct {
	HTTP        config.HTTPConfig
	Tracing     bool
	ServiceName string
	Production  bool
}

// NewEngine builds the gin engine with the full middleware chain and every route.
// Recovery runs first so a panicking middleware still yields an envelope.
// Tracing runs before the request logger so log lines carry the trace id.
func NewEngine(cfg EngineConfig, log *zap.Logger, h Handlers) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	secure := middleware.DefaultSecurityConfig()
	secure.HSTSEnabled = cfg.Production

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.TracingWithConfig(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.Tracing}),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(secure),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.Health.Check)

	r := NewRouter(engine)
	r.Register(SalesOrderRoutes(h.SalesOrders)).
		Register(ClientRoutes(h.Catalog)).
		Register(ItemRoutes(h.Catalog))
	r.Setup()

	return engine, nil
}

// SalesOrderRoutes mounts the order CRUD endpoints at /sales-orders
func SalesOrderRoutes(h *handler.SalesOrderHandler) *DomainGroup {
	return NewDomainGroup("sales-orders", "/sales-orders").
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// ClientRoutes mounts the read-only client endpoints
func ClientRoutes(h *handler.CatalogHandler) *DomainGroup {
	return NewDomainGroup("clients", "/clients").
		GET("", h.ListClients).
		GET("/:id", h.GetClient)
}

// ItemRoutes mounts the read-only item endpoints. The code lookup lives under
// its own static segment so it never collides with /:id.
func ItemRoutes(h *handler.CatalogHandler) *DomainGroup {
	return NewDomainGroup("items", "/items").
		GET("", h.ListItems).
		GET("/:id", h.GetItem).
		GET("/code/:code", h.GetItemByCode)
}
