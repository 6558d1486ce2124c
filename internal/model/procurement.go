package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier represents a vendor with commercial data.
type Supplier struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	TaxNumber *string    `gorm:"uniqueIndex" json:"tax_number"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	Address   *string    `json:"address"`
	StatusID  *uuid.UUID `gorm:"type:uuid" json:"status_id"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Status   *Status           `json:"status,omitempty"`
	Contacts []SupplierContact `json:"contacts,omitempty"`
}

// SupplierContact is a person reachable at a supplier.
type SupplierContact struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Name       string    `gorm:"not null" json:"name"`
	Position   *string   `json:"position"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty"`
}

// RFQ is a request for quotation sent to a supplier.
type RFQ struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RFQNumber    string     `gorm:"column:rfq_number;uniqueIndex;not null" json:"rfq_number"`
	SupplierID   *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id"`
	StatusID     *uuid.UUID `gorm:"type:uuid" json:"status_id"`
	FiscalYearID *uuid.UUID `gorm:"type:uuid" json:"fiscal_year_id"`
	RequestDate  time.Time  `gorm:"type:date;not null" json:"request_date"`
	ClosingDate  *time.Time `gorm:"type:date" json:"closing_date"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Supplier   *Supplier   `json:"supplier,omitempty"`
	Status     *Status     `json:"status,omitempty"`
	FiscalYear *FiscalYear `json:"fiscal_year,omitempty"`
	Items      []RFQItem   `gorm:"foreignKey:RFQID" json:"items,omitempty"`
}

func (RFQ) TableName() string { return "rfqs" }

// RFQItem is one requested product line.
type RFQItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RFQID     uuid.UUID       `gorm:"column:rfq_id;type:uuid;not null;index" json:"rfq_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	RFQ     *RFQ     `gorm:"foreignKey:RFQID" json:"rfq,omitempty"`
	Product *Product `json:"product,omitempty"`
}

func (RFQItem) TableName() string { return "rfq_items" }

// Subtotal is quantity × unit price.
func (i RFQItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
