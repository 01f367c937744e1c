// Package trade holds the sales order use cases.
package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/salesorder/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// maxOrderNumberRetries is how many fresh numbers Create tries after a collision
const maxOrderNumberRetries = 3

const serviceName = "SalesOrderService"

// SalesOrderService handles sales order business operations.
// Each call is its own unit of work; the repository owns the transaction.
type SalesOrderService struct {
	orders  trade.SalesOrderRepository
	clients catalog.ClientRepository
	items   catalog.ItemRepository
	numbers trade.OrderNumberGenerator
	now     func() time.Time
	logger  *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orders trade.SalesOrderRepository,
	clients catalog.ClientRepository,
	items catalog.ItemRepository,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orders:  orders,
		clients: clients,
		items:   items,
		numbers: trade.NewRandomOrderNumberGenerator(),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// SetOrderNumberGenerator replaces the order number source
func (s *SalesOrderService) SetOrderNumberGenerator(g trade.OrderNumberGenerator) {
	s.numbers = g
}

// SetClock replaces the time source used for order dates and modification times
func (s *SalesOrderService) SetClock(now func() time.Time) {
	s.now = now
}

func startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, operation, attrs...)
	return ctx, func(err error) {
		telemetry.RecordError(span, err)
		span.End()
	}
}

// List returns every order with its lines, newest first
func (s *SalesOrderService) List(ctx context.Context) (resp []SalesOrderResponse, err error) {
	ctx, end := startSpan(ctx, "List")
	defer func() { end(err) }()

	views, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponses(views), nil
}

// GetByID returns one order or shared.ErrNotFound
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (resp *SalesOrderResponse, err error) {
	ctx, end := startSpan(ctx, "GetByID", telemetry.AttrOrderID.String(id.String()))
	defer func() { end(err) }()

	view, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := ToSalesOrderResponse(view)
	return &r, nil
}

// Create validates the client and every item, prices the lines from the catalog
// and stores the order with a freshly generated order number.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (resp *SalesOrderResponse, err error) {
	ctx, end := startSpan(ctx, "Create",
		telemetry.AttrClientID.String(req.ClientID.String()),
		telemetry.AttrLineCount.Int(len(req.Items)),
	)
	defer func() { end(err) }()

	client, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	details := trade.OrderDetails{
		ClientID:        req.ClientID,
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceDate:     req.InvoiceDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		Address:         req.AddressInput.toValueObject().Or(client.Address),
	}

	now := s.now()
	var order *trade.SalesOrder
	for attempt := 0; ; attempt++ {
		order, err = trade.NewSalesOrder(s.numbers.Next(now), now, details, lines)
		if err != nil {
			return nil, err
		}
		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt >= maxOrderNumberRetries {
			return nil, err
		}
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", order.OrderNumber),
			zap.Int("attempt", attempt+1),
		)
	}

	telemetry.SetAttributes(ctx,
		telemetry.AttrOrderID.String(order.ID.String()),
		telemetry.AttrOrderNumber.String(order.OrderNumber),
	)
	s.logger.Info("sales order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_incl_amount", order.TotalInclAmount.String()),
	)
	return s.reload(ctx, order.ID)
}

// Update replaces the order's editable fields and its whole line set.
// The order must exist before any other check runs.
func (s *SalesOrderService) Update(ctx context.Context, id uuid.UUID, req UpdateSalesOrderRequest) (resp *SalesOrderResponse, err error) {
	ctx, end := startSpan(ctx, "Update",
		telemetry.AttrOrderID.String(id.String()),
		telemetry.AttrLineCount.Int(len(req.Items)),
	)
	defer func() { end(err) }()

	order, err := s.orders.FindAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.resolveClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	lines, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	details := trade.OrderDetails{
		ClientID:        req.ClientID,
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceDate:     req.InvoiceDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		Address:         req.AddressInput.toValueObject(),
	}
	if err := order.Revise(details, lines, s.now()); err != nil {
		return nil, err
	}
	if err := s.orders.Replace(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("sales order updated",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
	)
	return s.reload(ctx, order.ID)
}

// Delete removes the order, reporting false when it did not exist
func (s *SalesOrderService) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	ctx, end := startSpan(ctx, "Delete", telemetry.AttrOrderID.String(id.String()))
	defer func() { end(err) }()

	deleted, err = s.orders.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("sales order deleted", zap.String("order_id", id.String()))
	}
	return deleted, nil
}

func (s *SalesOrderService) resolveClient(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewValidationError("client not found")
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// resolveLines looks up every item and captures its current price.
// The first unknown item aborts the whole request.
func (s *SalesOrderService) resolveLines(ctx context.Context, inputs []SalesOrderLineInput) ([]trade.LineInput, error) {
	lines := make([]trade.LineInput, 0, len(inputs))
	for _, in := range inputs {
		item, err := s.items.FindByID(ctx, in.ItemID)
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError(fmt.Sprintf("item not found: %s", in.ItemID))
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, trade.LineInput{
			ItemID:    in.ItemID,
			Note:      in.Note,
			Quantity:  in.Quantity,
			TaxRate:   in.TaxRate,
			UnitPrice: item.Price,
		})
	}
	return lines, nil
}

// reload reads back a just-written order. The write has already committed, so
// a failure here is a consistency error rather than a not-found.
func (s *SalesOrderService) reload(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	view, err := s.orders.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to read back sales order", zap.String("order_id", id.String()), zap.Error(err))
		return nil, shared.NewConsistencyError("sales order was written but could not be read back", err)
	}
	r := ToSalesOrderResponse(view)
	return &r, nil
}
