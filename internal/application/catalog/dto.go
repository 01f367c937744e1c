package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address1  string    `json:"address1"`
	Address2  string    `json:"address2"`
	Address3  string    `json:"address3"`
	State     string    `json:"state"`
	PostCode  string    `json:"post_code"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToClientResponse converts a domain Client to a response DTO
func ToClientResponse(c *catalog.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address1:  c.Address.Address1(),
		Address2:  c.Address.Address2(),
		Address3:  c.Address.Address3(),
		State:     c.Address.State(),
		PostCode:  c.Address.PostCode(),
		CreatedAt: c.CreatedAt,
	}
}

// ToItemResponse converts a domain Item to a response DTO
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Description: i.Description,
		Price:       i.Price,
		CreatedAt:   i.CreatedAt,
	}
}
