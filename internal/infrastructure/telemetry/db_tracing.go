package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "telemetry:query_start"

// DBTracingConfig configures GORM instrumentation
type DBTracingConfig struct {
	Enabled            bool
	DBName             string
	SlowQueryThreshold time.Duration
	// IncludeQueryVariables records bound values in span attributes
	IncludeQueryVariables bool
}

// DBTracingPlugin attaches otelgorm spans and slow query reporting to a *gorm.DB
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new DBTracingPlugin
func NewDBTracingPlugin(config DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if config.SlowQueryThreshold <= 0 {
		config.SlowQueryThreshold = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: config, logger: logger.Named("db")}
}

// Register installs the plugin. It is a no-op when disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.IncludeQueryVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	return p.registerTimingCallbacks(db)
}

type registerFunc func(name string, fn func(*gorm.DB)) error

func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op            string
		before, after registerFunc
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("telemetry:before_"+h.op, markQueryStart); err != nil {
			return err
		}
		if err := h.after("telemetry:after_"+h.op, p.afterQuery); err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

// afterQuery annotates the current span and reports queries slower than the threshold
func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	var elapsed time.Duration
	if v, ok := db.InstanceGet(queryStartKey); ok {
		if start, ok := v.(time.Time); ok {
			elapsed = time.Since(start)
		}
	}
	slow := elapsed > p.config.SlowQueryThreshold

	if ctx := db.Statement.Context; ctx != nil {
		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
			if db.Statement.Table != "" {
				span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
			}
			if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
				RecordError(span, db.Error)
			}
			if slow {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
			}
		}
	}

	if slow {
		p.logger.Warn("slow query",
			zap.String("table", db.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", p.config.SlowQueryThreshold),
			zap.Int64("rows", db.Statement.RowsAffected),
		)
	}
}
