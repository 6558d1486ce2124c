package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Suppliers ─────────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name      string     `json:"name"       validate:"required,min=2,max=200"`
	TaxNumber *string    `json:"tax_number" validate:"omitempty,max=50"`
	Email     *string    `json:"email"      validate:"omitempty,email"`
	Phone     *string    `json:"phone"      validate:"omitempty,max=30"`
	Address   *string    `json:"address"    validate:"omitempty,max=300"`
	StatusID  *uuid.UUID `json:"status_id"`
	IsActive  *bool      `json:"is_active"`
}

func (r CreateSupplierRequest) ToModel() *model.Supplier {
	return &model.Supplier{
		Name:      r.Name,
		TaxNumber: r.TaxNumber,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		StatusID:  r.StatusID,
		IsActive:  boolOr(r.IsActive, true),
	}
}

type UpdateSupplierRequest struct {
	Name      *string    `json:"name"       validate:"omitempty,min=2,max=200"`
	TaxNumber *string    `json:"tax_number" validate:"omitempty,max=50"`
	Email     *string    `json:"email"      validate:"omitempty,email"`
	Phone     *string    `json:"phone"      validate:"omitempty,max=30"`
	Address   *string    `json:"address"    validate:"omitempty,max=300"`
	StatusID  *uuid.UUID `json:"status_id"`
	IsActive  *bool      `json:"is_active"`
}

func (r UpdateSupplierRequest) Apply(s *model.Supplier) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.TaxNumber != nil {
		s.TaxNumber = r.TaxNumber
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.StatusID != nil {
		s.StatusID = r.StatusID
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// ── Supplier contacts ─────────────────────────────────────────────────────────

type CreateSupplierContactRequest struct {
	SupplierID uuid.UUID `json:"supplier_id" validate:"required"`
	Name       string    `json:"name"        validate:"required,min=2,max=150"`
	Position   *string   `json:"position"    validate:"omitempty,max=100"`
	Email      *string   `json:"email"       validate:"omitempty,email"`
	Phone      *string   `json:"phone"       validate:"omitempty,max=30"`
}

func (r CreateSupplierContactRequest) ToModel() *model.SupplierContact {
	return &model.SupplierContact{
		SupplierID: r.SupplierID,
		Name:       r.Name,
		Position:   r.Position,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}

type UpdateSupplierContactRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=150"`
	Position *string `json:"position" validate:"omitempty,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"    validate:"omitempty,max=30"`
}

func (r UpdateSupplierContactRequest) Apply(c *model.SupplierContact) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Position != nil {
		c.Position = r.Position
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
}

// ── RFQs ──────────────────────────────────────────────────────────────────────

// RFQItemInput is one line submitted together with a new RFQ.
type RFQItemInput struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	Notes     *string         `json:"notes"      validate:"omitempty,max=500"`
}

type CreateRFQRequest struct {
	RFQNumber    string         `json:"rfq_number"     validate:"required,max=50"`
	SupplierID   *uuid.UUID     `json:"supplier_id"`
	StatusID     *uuid.UUID     `json:"status_id"`
	FiscalYearID *uuid.UUID     `json:"fiscal_year_id"`
	RequestDate  *Date          `json:"request_date"   validate:"required"`
	ClosingDate  *Date          `json:"closing_date"`
	Notes        *string        `json:"notes"          validate:"omitempty,max=1000"`
	Items        []RFQItemInput `json:"items"          validate:"omitempty,dive"`
}

func (r CreateRFQRequest) ToModel() *model.RFQ {
	rfq := &model.RFQ{
		RFQNumber:    r.RFQNumber,
		SupplierID:   r.SupplierID,
		StatusID:     r.StatusID,
		FiscalYearID: r.FiscalYearID,
		RequestDate:  r.RequestDate.Time,
		ClosingDate:  datePtr(r.ClosingDate),
		Notes:        r.Notes,
	}
	for _, it := range r.Items {
		rfq.Items = append(rfq.Items, model.RFQItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Notes:     it.Notes,
		})
	}
	return rfq
}

type UpdateRFQRequest struct {
	RFQNumber    *string    `json:"rfq_number"     validate:"omitempty,max=50"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	StatusID     *uuid.UUID `json:"status_id"`
	FiscalYearID *uuid.UUID `json:"fiscal_year_id"`
	RequestDate  *Date      `json:"request_date"`
	ClosingDate  *Date      `json:"closing_date"`
	Notes        *string    `json:"notes"          validate:"omitempty,max=1000"`
}

func (r UpdateRFQRequest) Apply(q *model.RFQ) {
	if r.RFQNumber != nil {
		q.RFQNumber = *r.RFQNumber
	}
	if r.SupplierID != nil {
		q.SupplierID = r.SupplierID
	}
	if r.StatusID != nil {
		q.StatusID = r.StatusID
	}
	if r.FiscalYearID != nil {
		q.FiscalYearID = r.FiscalYearID
	}
	if r.RequestDate != nil {
		q.RequestDate = r.RequestDate.Time
	}
	if r.ClosingDate != nil {
		q.ClosingDate = datePtr(r.ClosingDate)
	}
	if r.Notes != nil {
		q.Notes = r.Notes
	}
}

// ── RFQ items ─────────────────────────────────────────────────────────────────

type CreateRFQItemRequest struct {
	RFQID     uuid.UUID       `json:"rfq_id"     validate:"required"`
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	Notes     *string         `json:"notes"      validate:"omitempty,max=500"`
}

func (r CreateRFQItemRequest) ToModel() *model.RFQItem {
	return &model.RFQItem{
		RFQID:     r.RFQID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Notes:     r.Notes,
	}
}

type UpdateRFQItemRequest struct {
	ProductID *uuid.UUID       `json:"product_id"`
	Quantity  *int             `json:"quantity"   validate:"omitempty,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	Notes     *string          `json:"notes"      validate:"omitempty,max=500"`
}

func (r UpdateRFQItemRequest) Apply(i *model.RFQItem) {
	if r.ProductID != nil {
		i.ProductID = *r.ProductID
	}
	if r.Quantity != nil {
		i.Quantity = *r.Quantity
	}
	if r.UnitPrice != nil {
		i.UnitPrice = *r.UnitPrice
	}
	if r.Notes != nil {
		i.Notes = r.Notes
	}
}
