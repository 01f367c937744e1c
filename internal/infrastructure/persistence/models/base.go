package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
)

// BaseModel provides the identity columns every table has
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
}

// AddressColumns is the embedded postal address shared by clients and orders
type AddressColumns struct {
	Address1 string `gorm:"type:varchar(500)"`
	Address2 string `gorm:"type:varchar(500)"`
	Address3 string `gorm:"type:varchar(500)"`
	State    string `gorm:"type:varchar(100)"`
	PostCode string `gorm:"type:varchar(20)"`
}

// ToDomain converts the columns to an Address value object
func (a AddressColumns) ToDomain() valueobject.Address {
	return valueobject.NewAddress(a.Address1, a.Address2, a.Address3, a.State, a.PostCode)
}

// AddressColumnsFromDomain flattens an Address value object into columns
func AddressColumnsFromDomain(a valueobject.Address) AddressColumns {
	return AddressColumns{
		Address1: a.Address1(),
		Address2: a.Address2(),
		Address3: a.Address3(),
		State:    a.State(),
		PostCode: a.PostCode(),
	}
}

// AllModels lists every model in dependency order for AutoMigrate
func AllModels() []any {
	return []any{
		&ClientModel{},
		&ItemModel{},
		&SalesOrderModel{},
		&SalesOrderLineModel{},
		&OutboxEntryModel{},
	}
}
