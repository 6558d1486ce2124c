package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Brands ────────────────────────────────────────────────────────────────────

type CreateBrandRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r CreateBrandRequest) ToModel() *model.Brand {
	return &model.Brand{Name: r.Name, Description: r.Description, IsActive: boolOr(r.IsActive, true)}
}

type UpdateBrandRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateBrandRequest) Apply(b *model.Brand) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Description != nil {
		b.Description = r.Description
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
}

// ── Statuses ──────────────────────────────────────────────────────────────────

type CreateStatusRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Type string `json:"type" validate:"required,max=50"`
	Code string `json:"code" validate:"required,max=50"`
}

func (r CreateStatusRequest) ToModel() *model.Status {
	return &model.Status{Name: r.Name, Type: r.Type, Code: r.Code}
}

type UpdateStatusRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
	Type *string `json:"type" validate:"omitempty,max=50"`
	Code *string `json:"code" validate:"omitempty,max=50"`
}

func (r UpdateStatusRequest) Apply(s *model.Status) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Type != nil {
		s.Type = *r.Type
	}
	if r.Code != nil {
		s.Code = *r.Code
	}
}

// ── Products ──────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=2,max=200"`
	SKU         string          `json:"sku"         validate:"required,max=64"`
	Description *string         `json:"description"`
	BrandID     *uuid.UUID      `json:"brand_id"`
	StatusID    *uuid.UUID      `json:"status_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"min=0"`
	Unit        string          `json:"unit"        validate:"required,max=20"`
}

func (r CreateProductRequest) ToModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		SKU:         r.SKU,
		Description: r.Description,
		BrandID:     r.BrandID,
		StatusID:    r.StatusID,
		UnitPrice:   r.UnitPrice,
		Unit:        r.Unit,
	}
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=200"`
	SKU         *string          `json:"sku"         validate:"omitempty,max=64"`
	Description *string          `json:"description"`
	BrandID     *uuid.UUID       `json:"brand_id"`
	StatusID    *uuid.UUID       `json:"status_id"`
	UnitPrice   *decimal.Decimal `json:"unit_price"  validate:"omitempty,min=0"`
	Unit        *string          `json:"unit"        validate:"omitempty,max=20"`
}

func (r UpdateProductRequest) Apply(p *model.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.SKU != nil {
		p.SKU = *r.SKU
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.BrandID != nil {
		p.BrandID = r.BrandID
	}
	if r.StatusID != nil {
		p.StatusID = r.StatusID
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
}
