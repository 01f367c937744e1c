package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/salesorder/backend/internal/application/catalog"
)

// CatalogService is the read side of the catalog application layer
type CatalogService interface {
	ListClients(ctx context.Context) ([]catalogapp.ClientResponse, error)
	GetClient(ctx context.Context, id uuid.UUID) (*catalogapp.ClientResponse, error)
	ListItems(ctx context.Context) ([]catalogapp.ItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*catalogapp.ItemResponse, error)
	GetItemByCode(ctx context.Context, code string) (*catalogapp.ItemResponse, error)
}

// CatalogHandler serves the read-only client and item endpoints
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) ListClients(c *gin.Context) {
	clients, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, clients)
}

func (h *CatalogHandler) GetClient(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	client, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, client)
}

func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// GetItemByCode looks an item up by its unique code
func (h *CatalogHandler) GetItemByCode(c *gin.Context) {
	item, err := h.service.GetItemByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}
