package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/salesorder/backend/internal/application/trade"
)

// SalesOrderService is the part of the trade application layer the handler drives
type SalesOrderService interface {
	List(ctx context.Context) ([]tradeapp.SalesOrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.SalesOrderResponse, error)
	Create(ctx context.Context, req tradeapp.CreateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error)
	Update(ctx context.Context, id uuid.UUID, req tradeapp.UpdateSalesOrderRequest) (*tradeapp.SalesOrderResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// SalesOrderHandler handles /sales-orders
type SalesOrderHandler struct {
	BaseHandler
	service SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(service SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{service: service}
}

// List returns every order with lines, newest first
func (h *SalesOrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one enriched order
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Create places a new order. Location points at the new resource under the
// collection path the request was posted to.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, strings.TrimSuffix(c.Request.URL.Path, "/")+"/"+order.ID.String(), order)
}

// Update replaces the editable fields and the whole line set
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req tradeapp.UpdateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order and its lines
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Sales order not found")
		return
	}
	h.NoContent(c)
}
