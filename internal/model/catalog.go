package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Brand groups products by manufacturer.
type Brand struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Products []Product `json:"products,omitempty"`
}

// Status is a reusable lifecycle label scoped by Type (e.g. "transfer", "rfq").
type Status struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `gorm:"not null;uniqueIndex:idx_statuses_type_code,priority:1" json:"type"`
	Code      string    `gorm:"not null;uniqueIndex:idx_statuses_type_code,priority:2" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a stock-keeping unit.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	SKU         string          `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Description *string         `json:"description"`
	BrandID     *uuid.UUID      `gorm:"type:uuid;index" json:"brand_id"`
	StatusID    *uuid.UUID      `gorm:"type:uuid" json:"status_id"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	Unit        string          `gorm:"type:varchar(20);not null" json:"unit"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Brand       *Brand      `json:"brand,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Inventories []Inventory `json:"inventories,omitempty"`
}
