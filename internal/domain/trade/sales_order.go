package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salesorder/backend/internal/domain/shared"
	"github.com/salesorder/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Field limits mirrored by the database schema
const (
	MaxInvoiceNumberLength   = 50
	MaxReferenceNumberLength = 100
	MaxNotesLength           = 2000
	MaxLineNoteLength        = 1000
)

// SalesOrderLine is a single priced item on a sales order
type SalesOrderLine struct {
	ID           uuid.UUID
	SalesOrderID uuid.UUID
	ItemID       uuid.UUID
	LineNo       int
	Note         string
	Quantity     decimal.Decimal
	TaxRate      decimal.Decimal // percentage, 10 means 10%
	UnitPrice    decimal.Decimal // item price captured when the line was built
	ExclAmount   decimal.Decimal
	TaxAmount    decimal.Decimal
	InclAmount   decimal.Decimal
}

// NewSalesOrderLine validates the inputs and computes the line amounts.
// Inputs may carry at most AmountScale decimal places; the amounts are rounded
// to that scale so the stored lines add up to the stored totals.
func NewSalesOrderLine(orderID, itemID uuid.UUID, lineNo int, note string, quantity, taxRate, unitPrice decimal.Decimal) (*SalesOrderLine, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("item id is required")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity, "quantity must be greater than zero")
	}
	if !HasStorableScale(quantity) || !withinStoredRange(quantity) {
		return nil, shared.NewDomainError(shared.CodeInvalidQuantity,
			fmt.Sprintf("quantity must have at most %d decimal places and at most 14 integer digits", AmountScale))
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidTaxRate, "tax rate cannot be negative")
	}
	if !HasStorableScale(taxRate) || !withinStoredRange(taxRate) {
		return nil, shared.NewDomainError(shared.CodeInvalidTaxRate,
			fmt.Sprintf("tax rate must have at most %d decimal places and at most 14 integer digits", AmountScale))
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidPrice, "unit price cannot be negative")
	}
	if !HasStorableScale(unitPrice) || !withinStoredRange(unitPrice) {
		return nil, shared.NewDomainError(shared.CodeInvalidPrice,
			fmt.Sprintf("unit price must have at most %d decimal places and at most 14 integer digits", AmountScale))
	}
	if len(note) > MaxLineNoteLength {
		return nil, shared.NewValidationError(fmt.Sprintf("line note cannot exceed %d characters", MaxLineNoteLength))
	}

	amounts := CalculateLineAmounts(quantity, unitPrice, taxRate).Rounded()
	if !withinStoredRange(amounts.Incl) {
		return nil, shared.NewValidationError("line amount is too large to store")
	}
	return &SalesOrderLine{
		ID:           uuid.New(),
		SalesOrderID: orderID,
		ItemID:       itemID,
		LineNo:       lineNo,
		Note:         note,
		Quantity:     quantity,
		TaxRate:      taxRate,
		UnitPrice:    unitPrice,
		ExclAmount:   amounts.Excl,
		TaxAmount:    amounts.Tax,
		InclAmount:   amounts.Incl,
	}, nil
}

// Amounts returns the line's stored amounts
func (l *SalesOrderLine) Amounts() LineAmounts {
	return LineAmounts{Excl: l.ExclAmount, Tax: l.TaxAmount, Incl: l.InclAmount}
}

// LineInput is a requested line with the unit price already resolved from the catalog
type LineInput struct {
	ItemID    uuid.UUID
	Note      string
	Quantity  decimal.Decimal
	TaxRate   decimal.Decimal
	UnitPrice decimal.Decimal
}

// OrderDetails holds the editable header fields of a sales order
type OrderDetails struct {
	ClientID        uuid.UUID
	InvoiceNumber   string
	InvoiceDate     *time.Time
	ReferenceNumber string
	Notes           string
	Address         valueobject.Address
}

func (d OrderDetails) validate() error {
	if d.ClientID == uuid.Nil {
		return shared.NewValidationError("client id is required")
	}
	if len(d.InvoiceNumber) > MaxInvoiceNumberLength {
		return shared.NewValidationError(fmt.Sprintf("invoice number cannot exceed %d characters", MaxInvoiceNumberLength))
	}
	if len(d.ReferenceNumber) > MaxReferenceNumberLength {
		return shared.NewValidationError(fmt.Sprintf("reference number cannot exceed %d characters", MaxReferenceNumberLength))
	}
	if len(d.Notes) > MaxNotesLength {
		return shared.NewValidationError(fmt.Sprintf("notes cannot exceed %d characters", MaxNotesLength))
	}
	return d.Address.Validate()
}

// SalesOrder is the aggregate root for a client's order.
// Lines are owned by value and the totals always equal the sum over Lines.
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	OrderDate       time.Time
	ClientID        uuid.UUID
	InvoiceNumber   string
	InvoiceDate     *time.Time
	ReferenceNumber string
	Notes           string
	Address         valueobject.Address
	TotalExclAmount decimal.Decimal
	TotalTaxAmount  decimal.Decimal
	TotalInclAmount decimal.Decimal
	UpdatedAt       *time.Time
	Lines           []SalesOrderLine
}

// NewSalesOrder builds a new order with its full line set. Nothing is returned
// unless every line is valid.
func NewSalesOrder(orderNumber string, at time.Time, details OrderDetails, lines []LineInput) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("order number cannot be empty")
	}
	if len(orderNumber) > MaxOrderNumberLength {
		return nil, shared.NewValidationError(fmt.Sprintf("order number cannot exceed %d characters", MaxOrderNumberLength))
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	at = at.UTC()
	order := &SalesOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.NewBaseEntity(at)},
		OrderNumber:       orderNumber,
		OrderDate:         at,
	}
	order.applyDetails(details)
	if err := order.ReplaceLines(lines); err != nil {
		return nil, err
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))
	return order, nil
}

// Revise replaces every editable field and the whole line set.
// Order number, order date and creation time are left untouched.
func (o *SalesOrder) Revise(details OrderDetails, lines []LineInput, at time.Time) error {
	if err := details.validate(); err != nil {
		return err
	}
	if err := o.ReplaceLines(lines); err != nil {
		return err
	}
	o.applyDetails(details)
	modified := at.UTC()
	o.UpdatedAt = &modified

	o.AddDomainEvent(NewSalesOrderUpdatedEvent(o))
	return nil
}

// ReplaceLines builds the new line set in memory and swaps it in only if every
// line is valid, then recomputes the totals.
func (o *SalesOrder) ReplaceLines(inputs []LineInput) error {
	lines := make([]SalesOrderLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := NewSalesOrderLine(o.ID, in.ItemID, i+1, in.Note, in.Quantity, in.TaxRate, in.UnitPrice)
		if err != nil {
			return err
		}
		lines = append(lines, *line)
	}
	o.Lines = lines
	o.recalculateTotals()
	return nil
}

func (o *SalesOrder) applyDetails(d OrderDetails) {
	o.ClientID = d.ClientID
	o.InvoiceNumber = d.InvoiceNumber
	o.InvoiceDate = d.InvoiceDate
	o.ReferenceNumber = d.ReferenceNumber
	o.Notes = d.Notes
	o.Address = d.Address
}

func (o *SalesOrder) recalculateTotals() {
	amounts := make([]LineAmounts, len(o.Lines))
	for i := range o.Lines {
		amounts[i] = o.Lines[i].Amounts()
	}
	total := SumAmounts(amounts...)
	o.TotalExclAmount = total.Excl
	o.TotalTaxAmount = total.Tax
	o.TotalInclAmount = total.Incl
}

// LineCount returns the number of lines
func (o *SalesOrder) LineCount() int {
	return len(o.Lines)
}
