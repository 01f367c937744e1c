package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/salesorder/backend/internal/application/catalog"
	tradeapp "github.com/salesorder/backend/internal/application/trade"
	"github.com/salesorder/backend/internal/infrastructure/cache"
	"github.com/salesorder/backend/internal/infrastructure/config"
	"github.com/salesorder/backend/internal/infrastructure/event"
	"github.com/salesorder/backend/internal/infrastructure/logger"
	"github.com/salesorder/backend/internal/infrastructure/persistence"
	"github.com/salesorder/backend/internal/infrastructure/telemetry"
	"github.com/salesorder/backend/internal/interfaces/http/handler"
	"github.com/salesorder/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting sales order service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry comes first so the database plugin and the HTTP middleware
	// pick up the global providers.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:               cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:                cfg.Database.DBName,
		SlowQueryThreshold:    cfg.Telemetry.DBSlowQueryThresh,
		IncludeQueryVariables: cfg.Telemetry.DBLogFullSQL,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Postgres schemas are owned by cmd/migrate.
	if db.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	if cfg.Seed.Enabled {
		seeded, err := persistence.SeedCatalog(ctx, db.DB)
		if err != nil {
			log.Fatal("Failed to seed catalog", zap.Error(err))
		}
		log.Info("Catalog seed checked", zap.Bool("seeded", seeded))
	}

	// Repositories. Order writes price lines from the uncached catalog;
	// only the read endpoints go through the cache.
	clientRepo := persistence.NewGormClientRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)

	cacheStore := cache.NewStore(ctx, cfg.Redis, log)
	defer func() {
		if err := cacheStore.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if mem, ok := cacheStore.(*cache.MemoryStore); ok {
		go mem.RunSweeper(sweepCtx, time.Minute)
	}
	cachedClients := cache.NewCachedClientRepository(clientRepo, cacheStore, cfg.Redis.CatalogTTL, log)
	cachedItems := cache.NewCachedItemRepository(itemRepo, cacheStore, cfg.Redis.CatalogTTL, log)

	serializer := event.NewSalesOrderSerializer()
	outboxPublisher := event.NewOutboxPublisher(serializer, cfg.Event.MaxRetries)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB, outboxPublisher)

	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, clientRepo, itemRepo, log)
	catalogService := catalogapp.NewCatalogService(cachedClients, cachedItems)

	// Event delivery: outbox -> bus -> handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	salesMetrics, err := telemetry.NewSalesMetrics(meterProvider.Meter(telemetry.MeterName))
	if err != nil {
		log.Fatal("Failed to create sales metrics", zap.Error(err))
	}
	eventBus.Subscribe(salesMetrics)

	outboxRepo := event.NewGormOutboxRepository(db.DB)
	if _, err := telemetry.RegisterOperationalGauges(meterProvider.Meter(telemetry.MeterName), outboxRepo, db); err != nil {
		log.Fatal("Failed to register operational gauges", zap.Error(err))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	var outboxProcessor *event.OutboxProcessor
	if cfg.Event.ProcessorEnabled {
		outboxProcessor = event.NewOutboxProcessor(
			outboxRepo,
			eventBus,
			serializer,
			event.OutboxProcessorConfig{
				BatchSize:         cfg.Event.BatchSize,
				PollInterval:      cfg.Event.PollInterval,
				ProcessingTimeout: cfg.Event.ProcessingTimeout,
				CleanupRetention:  cfg.Event.CleanupRetention,
			},
			log.Named("outbox"),
		)
		if err := outboxProcessor.Start(ctx); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
	} else {
		log.Warn("outbox processor disabled, events stay pending")
	}

	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:        cfg.HTTP,
		Tracing:     tracerProvider.IsEnabled(),
		ServiceName: cfg.Telemetry.ServiceName,
		Production:  cfg.App.Env == "production",
	}, log, router.Handlers{
		SalesOrders: handler.NewSalesOrderHandler(salesOrderService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Health:      handler.NewHealthHandler(db),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if outboxProcessor != nil {
		if err := outboxProcessor.Stop(shutdownCtx); err != nil {
			log.Error("Outbox processor did not stop in time", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
