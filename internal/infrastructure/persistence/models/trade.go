package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	BaseModel
	OrderNumber     string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_orders_order_number"`
	OrderDate       time.Time    `gorm:"not null;index:idx_sales_orders_order_date"`
	ClientID        uuid.UUID    `gorm:"type:uuid;not null;index"`
	Client          *ClientModel `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	InvoiceNumber   string       `gorm:"type:varchar(50)"`
	InvoiceDate     *time.Time
	ReferenceNumber string `gorm:"type:varchar(100)"`
	Notes           string `gorm:"type:varchar(2000)"`
	AddressColumns
	TotalExclAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTaxAmount  decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TotalInclAmount decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	UpdatedAt       *time.Time            `gorm:"autoUpdateTime:false"`
	Lines           []SalesOrderLineModel `gorm:"foreignKey:SalesOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder aggregate.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	order := &trade.SalesOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain()},
		OrderNumber:       m.OrderNumber,
		OrderDate:         m.OrderDate.UTC(),
		ClientID:          m.ClientID,
		InvoiceNumber:     m.InvoiceNumber,
		InvoiceDate:       utcPtr(m.InvoiceDate),
		ReferenceNumber:   m.ReferenceNumber,
		Notes:             m.Notes,
		Address:           m.AddressColumns.ToDomain(),
		TotalExclAmount:   m.TotalExclAmount,
		TotalTaxAmount:    m.TotalTaxAmount,
		TotalInclAmount:   m.TotalInclAmount,
		UpdatedAt:         utcPtr(m.UpdatedAt),
		Lines:             make([]trade.SalesOrderLine, len(m.Lines)),
	}
	for i := range m.Lines {
		order.Lines[i] = *m.Lines[i].ToDomain()
	}
	return order
}

// ToView converts the model, with Client and Lines.Item preloaded, into the read projection.
func (m *SalesOrderModel) ToView() *trade.SalesOrderView {
	view := &trade.SalesOrderView{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		OrderDate:       m.OrderDate.UTC(),
		ClientID:        m.ClientID,
		InvoiceNumber:   m.InvoiceNumber,
		InvoiceDate:     utcPtr(m.InvoiceDate),
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		Address:         m.AddressColumns.ToDomain(),
		TotalExclAmount: m.TotalExclAmount,
		TotalTaxAmount:  m.TotalTaxAmount,
		TotalInclAmount: m.TotalInclAmount,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       utcPtr(m.UpdatedAt),
		Lines:           make([]trade.SalesOrderLineView, len(m.Lines)),
	}
	if m.Client != nil {
		view.ClientName = m.Client.Name
	}
	for i := range m.Lines {
		view.Lines[i] = m.Lines[i].ToView()
	}
	return view
}

// HeaderUpdates returns the editable header columns for a full-replace update.
// order_number, order_date and created_at are never part of the update.
func (m *SalesOrderModel) HeaderUpdates() map[string]any {
	return map[string]any{
		"client_id":         m.ClientID,
		"invoice_number":    m.InvoiceNumber,
		"invoice_date":      m.InvoiceDate,
		"reference_number":  m.ReferenceNumber,
		"notes":             m.Notes,
		"address1":          m.Address1,
		"address2":          m.Address2,
		"address3":          m.Address3,
		"state":             m.State,
		"post_code":         m.PostCode,
		"total_excl_amount": m.TotalExclAmount,
		"total_tax_amount":  m.TotalTaxAmount,
		"total_incl_amount": m.TotalInclAmount,
		"updated_at":        m.UpdatedAt,
	}
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder aggregate.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		OrderNumber:     o.OrderNumber,
		OrderDate:       o.OrderDate,
		ClientID:        o.ClientID,
		InvoiceNumber:   o.InvoiceNumber,
		InvoiceDate:     o.InvoiceDate,
		ReferenceNumber: o.ReferenceNumber,
		Notes:           o.Notes,
		AddressColumns:  AddressColumnsFromDomain(o.Address),
		TotalExclAmount: o.TotalExclAmount,
		TotalTaxAmount:  o.TotalTaxAmount,
		TotalInclAmount: o.TotalInclAmount,
		UpdatedAt:       o.UpdatedAt,
		Lines:           make([]SalesOrderLineModel, len(o.Lines)),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for i := range o.Lines {
		m.Lines[i] = *SalesOrderLineModelFromDomain(&o.Lines[i])
	}
	return m
}

// SalesOrderLineModel is the persistence model for the SalesOrderLine entity.
type SalesOrderLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo       int             `gorm:"not null"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Item         *ItemModel      `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Note         string          `gorm:"type:varchar(1000)"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExclAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InclAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SalesOrderLineModel) TableName() string {
	return "sales_order_lines"
}

// ToDomain converts the persistence model to a domain SalesOrderLine entity.
func (m *SalesOrderLineModel) ToDomain() *trade.SalesOrderLine {
	return &trade.SalesOrderLine{
		ID:           m.ID,
		SalesOrderID: m.SalesOrderID,
		ItemID:       m.ItemID,
		LineNo:       m.LineNo,
		Note:         m.Note,
		Quantity:     m.Quantity,
		TaxRate:      m.TaxRate,
		UnitPrice:    m.UnitPrice,
		ExclAmount:   m.ExclAmount,
		TaxAmount:    m.TaxAmount,
		InclAmount:   m.InclAmount,
	}
}

// ToView converts the line, with Item preloaded, into the read projection.
func (m *SalesOrderLineModel) ToView() trade.SalesOrderLineView {
	v := trade.SalesOrderLineView{
		ID:         m.ID,
		LineNo:     m.LineNo,
		ItemID:     m.ItemID,
		Note:       m.Note,
		Quantity:   m.Quantity,
		TaxRate:    m.TaxRate,
		UnitPrice:  m.UnitPrice,
		ExclAmount: m.ExclAmount,
		TaxAmount:  m.TaxAmount,
		InclAmount: m.InclAmount,
	}
	if m.Item != nil {
		v.ItemCode = m.Item.Code
		v.ItemDescription = m.Item.Description
		v.ItemPrice = m.Item.Price
	}
	return v
}

// SalesOrderLineModelFromDomain creates a new persistence model from a domain SalesOrderLine entity.
func SalesOrderLineModelFromDomain(l *trade.SalesOrderLine) *SalesOrderLineModel {
	return &SalesOrderLineModel{
		ID:           l.ID,
		SalesOrderID: l.SalesOrderID,
		LineNo:       l.LineNo,
		ItemID:       l.ItemID,
		Note:         l.Note,
		Quantity:     l.Quantity,
		TaxRate:      l.TaxRate,
		UnitPrice:    l.UnitPrice,
		ExclAmount:   l.ExclAmount,
		TaxAmount:    l.TaxAmount,
		InclAmount:   l.InclAmount,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
