package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
)

// ── Fiscal years ──────────────────────────────────────────────────────────────

type CreateFiscalYearRequest struct {
	Name      string `json:"name"       validate:"required,max=50"`
	StartDate *Date  `json:"start_date" validate:"required"`
	EndDate   *Date  `json:"end_date"   validate:"required"`
	IsClosed  *bool  `json:"is_closed"`
}

func (r CreateFiscalYearRequest) ToModel() *model.FiscalYear {
	return &model.FiscalYear{
		Name:      r.Name,
		StartDate: r.StartDate.Time,
		EndDate:   r.EndDate.Time,
		IsClosed:  boolOr(r.IsClosed, false),
	}
}

type UpdateFiscalYearRequest struct {
	Name      *string `json:"name"       validate:"omitempty,max=50"`
	StartDate *Date   `json:"start_date"`
	EndDate   *Date   `json:"end_date"`
	IsClosed  *bool   `json:"is_closed"`
}

func (r UpdateFiscalYearRequest) Apply(f *model.FiscalYear) {
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.StartDate != nil {
		f.StartDate = r.StartDate.Time
	}
	if r.EndDate != nil {
		f.EndDate = r.EndDate.Time
	}
	if r.IsClosed != nil {
		f.IsClosed = *r.IsClosed
	}
}

// ── Account codes ─────────────────────────────────────────────────────────────

type CreateAccountCodeRequest struct {
	Code        string     `json:"code"         validate:"required,max=30"`
	Name        string     `json:"name"         validate:"required,min=2,max=150"`
	AccountType string     `json:"account_type" validate:"required,oneof=asset liability equity revenue expense"`
	ParentID    *uuid.UUID `json:"parent_id"`
	IsActive    *bool      `json:"is_active"`
}

func (r CreateAccountCodeRequest) ToModel() *model.AccountCode {
	return &model.AccountCode{
		Code:        r.Code,
		Name:        r.Name,
		AccountType: r.AccountType,
		ParentID:    r.ParentID,
		IsActive:    boolOr(r.IsActive, true),
	}
}

type UpdateAccountCodeRequest struct {
	Code        *string    `json:"code"         validate:"omitempty,max=30"`
	Name        *string    `json:"name"         validate:"omitempty,min=2,max=150"`
	AccountType *string    `json:"account_type" validate:"omitempty,oneof=asset liability equity revenue expense"`
	ParentID    *uuid.UUID `json:"parent_id"`
	IsActive    *bool      `json:"is_active"`
}

func (r UpdateAccountCodeRequest) Apply(a *model.AccountCode) {
	if r.Code != nil {
		a.Code = *r.Code
	}
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.AccountType != nil {
		a.AccountType = *r.AccountType
	}
	if r.ParentID != nil {
		a.ParentID = r.ParentID
	}
	if r.IsActive != nil {
		a.IsActive = *r.IsActive
	}
}
