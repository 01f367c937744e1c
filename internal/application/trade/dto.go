package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/salesorder/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// AddressInput is the order's address snapshot. Leaving every field empty on
// create copies the client's address.
type AddressInput struct {
	Address1 string `json:"address1" binding:"max=500"`
	Address2 string `json:"address2" binding:"max=500"`
	Address3 string `json:"address3" binding:"max=500"`
	State    string `json:"state" binding:"max=100"`
	PostCode string `json:"post_code" binding:"max=20"`
}

func (a AddressInput) toValueObject() valueobject.Address {
	return valueobject.NewAddress(a.Address1, a.Address2, a.Address3, a.State, a.PostCode)
}

// SalesOrderLineInput is one requested line. The unit price comes from the catalog.
type SalesOrderLineInput struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Note     string          `json:"note" binding:"max=1000"`
	Quantity decimal.Decimal `json:"quantity"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
}

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	ClientID        uuid.UUID  `json:"client_id" binding:"required"`
	InvoiceNumber   string     `json:"invoice_number" binding:"max=50"`
	InvoiceDate     *time.Time `json:"invoice_date"`
	ReferenceNumber string     `json:"reference_number" binding:"max=100"`
	Notes           string     `json:"notes" binding:"max=2000"`
	AddressInput
	Items []SalesOrderLineInput `json:"items" binding:"dive"`
}

// UpdateSalesOrderRequest replaces every editable field and the whole line set
type UpdateSalesOrderRequest struct {
	ClientID        uuid.UUID  `json:"client_id" binding:"required"`
	InvoiceNumber   string     `json:"invoice_number" binding:"max=50"`
	InvoiceDate     *time.Time `json:"invoice_date"`
	ReferenceNumber string     `json:"reference_number" binding:"max=100"`
	Notes           string     `json:"notes" binding:"max=2000"`
	AddressInput
	Items []SalesOrderLineInput `json:"items" binding:"dive"`
}

// SalesOrderResponse represents a sales order in API responses.
// Amounts serialize as decimal strings.
type SalesOrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	OrderNumber     string                   `json:"order_number"`
	OrderDate       time.Time                `json:"order_date"`
	ClientID        uuid.UUID                `json:"client_id"`
	ClientName      string                   `json:"client_name"`
	InvoiceNumber   string                   `json:"invoice_number"`
	InvoiceDate     *time.Time               `json:"invoice_date,omitempty"`
	ReferenceNumber string                   `json:"reference_number"`
	Notes           string                   `json:"notes"`
	Address1        string                   `json:"address1"`
	Address2        string                   `json:"address2"`
	Address3        string                   `json:"address3"`
	State           string                   `json:"state"`
	PostCode        string                   `json:"post_code"`
	TotalExclAmount decimal.Decimal          `json:"total_excl_amount"`
	TotalTaxAmount  decimal.Decimal          `json:"total_tax_amount"`
	TotalInclAmount decimal.Decimal          `json:"total_incl_amount"`
	Items           []SalesOrderLineResponse `json:"items"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       *time.Time               `json:"updated_at,omitempty"`
}

// SalesOrderLineResponse is a line with the referenced item's current catalog data
type SalesOrderLineResponse struct {
	ID              uuid.UUID       `json:"id"`
	LineNo          int             `json:"line_no"`
	ItemID          uuid.UUID       `json:"item_id"`
	ItemCode        string          `json:"item_code"`
	ItemDescription string          `json:"item_description"`
	ItemPrice       decimal.Decimal `json:"item_price"`
	Note            string          `json:"note"`
	Quantity        decimal.Decimal `json:"quantity"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ExclAmount      decimal.Decimal `json:"excl_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	InclAmount      decimal.Decimal `json:"incl_amount"`
}

// ToSalesOrderResponse converts the read projection to a response DTO
func ToSalesOrderResponse(v *trade.SalesOrderView) SalesOrderResponse {
	lines := make([]SalesOrderLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = SalesOrderLineResponse{
			ID:              l.ID,
			LineNo:          l.LineNo,
			ItemID:          l.ItemID,
			ItemCode:        l.ItemCode,
			ItemDescription: l.ItemDescription,
			ItemPrice:       l.ItemPrice,
			Note:            l.Note,
			Quantity:        l.Quantity,
			TaxRate:         l.TaxRate,
			UnitPrice:       l.UnitPrice,
			ExclAmount:      l.ExclAmount,
			TaxAmount:       l.TaxAmount,
			InclAmount:      l.InclAmount,
		}
	}

	return SalesOrderResponse{
		ID:              v.ID,
		OrderNumber:     v.OrderNumber,
		OrderDate:       v.OrderDate,
		ClientID:        v.ClientID,
		ClientName:      v.ClientName,
		InvoiceNumber:   v.InvoiceNumber,
		InvoiceDate:     v.InvoiceDate,
		ReferenceNumber: v.ReferenceNumber,
		Notes:           v.Notes,
		Address1:        v.Address.Address1(),
		Address2:        v.Address.Address2(),
		Address3:        v.Address.Address3(),
		State:           v.Address.State(),
		PostCode:        v.Address.PostCode(),
		TotalExclAmount: v.TotalExclAmount,
		TotalTaxAmount:  v.TotalTaxAmount,
		TotalInclAmount: v.TotalInclAmount,
		Items:           lines,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// ToSalesOrderResponses converts a list of projections
func ToSalesOrderResponses(views []trade.SalesOrderView) []SalesOrderResponse {
	out := make([]SalesOrderResponse, len(views))
	for i := range views {
		out[i] = ToSalesOrderResponse(&views[i])
	}
	return out
}
