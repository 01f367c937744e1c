package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/salesorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM.
// Writes store the aggregate's pending events through the outbox saver in the
// same transaction.
type GormSalesOrderRepository struct {
	db     *gorm.DB
	outbox shared.OutboxEventSaver
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB, outbox shared.OutboxEventSaver) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db, outbox: outbox}
}

// enriched preloads the client and, per line in line order, the referenced item
func (r *GormSalesOrderRepository) enriched(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Preload("Lines.Item")
}

// FindAll returns every order, newest order date first
func (r *GormSalesOrderRepository) FindAll(ctx context.Context) ([]trade.SalesOrderView, error) {
	var rows []models.SalesOrderModel
	err := r.enriched(ctx).
		Order("order_date DESC").
		Order("order_number DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError("list sales orders", err)
	}

	views := make([]trade.SalesOrderView, len(rows))
	for i := range rows {
		views[i] = *rows[i].ToView()
	}
	return views, nil
}

// FindByID returns the enriched order or shared.ErrNotFound
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrderView, error) {
	var row models.SalesOrderModel
	if err := r.enriched(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError("find sales order", err)
	}
	return row.ToView(), nil
}

// FindAggregate loads the order with its lines for modification
func (r *GormSalesOrderRepository) FindAggregate(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var row models.SalesOrderModel
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, translateError("load sales order", err)
	}
	return row.ToDomain(), nil
}

// Create inserts the order header, its lines and its events in one transaction
func (r *GormSalesOrderRepository) Create(ctx context.Context, order *trade.SalesOrder) error {
	row := models.SalesOrderModelFromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
			return err
		}
		if err := insertLines(tx, row.Lines); err != nil {
			return err
		}
		return r.outbox.SaveEvents(ctx, tx, order.GetDomainEvents()...)
	})
	if err != nil {
		return translateError("create sales order", err)
	}

	order.ClearDomainEvents()
	return nil
}

// Replace overwrites the editable header columns and swaps the whole line set.
// The order number, order date and creation time are never written.
func (r *GormSalesOrderRepository) Replace(ctx context.Context, order *trade.SalesOrder) error {
	row := models.SalesOrderModelFromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SalesOrderModel{}).
			Where("id = ?", row.ID).
			Updates(row.HeaderUpdates())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("sales_order_id = ?", row.ID).Delete(&models.SalesOrderLineModel{}).Error; err != nil {
			return err
		}
		if err := insertLines(tx, row.Lines); err != nil {
			return err
		}
		return r.outbox.SaveEvents(ctx, tx, order.GetDomainEvents()...)
	})
	if err != nil {
		return translateError("replace sales order", err)
	}

	order.ClearDomainEvents()
	return nil
}

// Delete removes the order and its lines and records a deletion event.
// It reports false, with no error, when the order does not exist.
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	existed := true

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var head models.SalesOrderModel
		if err := tx.Select("id", "order_number").First(&head, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				existed = false
				return nil
			}
			return err
		}

		if err := tx.Where("sales_order_id = ?", id).Delete(&models.SalesOrderLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.SalesOrderModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return r.outbox.SaveEvents(ctx, tx, trade.NewSalesOrderDeletedEvent(id, head.OrderNumber))
	})
	if err != nil {
		return false, translateError("delete sales order", err)
	}
	return existed, nil
}

func insertLines(tx *gorm.DB, lines []models.SalesOrderLineModel) error {
	if len(lines) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&lines).Error
}

var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
