package models

import (
	"github.com/salesorder/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client entity.
type ClientModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
	AddressColumns
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *catalog.Client {
	return &catalog.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.AddressColumns.ToDomain(),
	}
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *catalog.Client) *ClientModel {
	m := &ClientModel{
		Name:           c.Name,
		AddressColumns: AddressColumnsFromDomain(c.Address),
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ItemModel is the persistence model for the Item entity.
type ItemModel struct {
	BaseModel
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_items_code"`
	Description string          `gorm:"type:varchar(500)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Description: m.Description,
		Price:       m.Price,
	}
}

// ItemModelFromDomain creates a new persistence model from a domain Item entity.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{
		Code:        i.Code,
		Description: i.Description,
		Price:       i.Price,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
