package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
)

// ── Warehouses ────────────────────────────────────────────────────────────────

type CreateWarehouseRequest struct {
	Name     string  `json:"name"    validate:"required,min=2,max=100"`
	Code     string  `json:"code"    validate:"required,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	IsActive *bool   `json:"is_active"`
}

func (r CreateWarehouseRequest) ToModel() *model.Warehouse {
	return &model.Warehouse{Name: r.Name, Code: r.Code, Address: r.Address, IsActive: boolOr(r.IsActive, true)}
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"    validate:"omitempty,min=2,max=100"`
	Code     *string `json:"code"    validate:"omitempty,max=30"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateWarehouseRequest) Apply(w *model.Warehouse) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Code != nil {
		w.Code = *r.Code
	}
	if r.Address != nil {
		w.Address = r.Address
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
}

// ── Inventories ───────────────────────────────────────────────────────────────

type CreateInventoryRequest struct {
	ProductID    uuid.UUID `json:"product_id"    validate:"required"`
	WarehouseID  uuid.UUID `json:"warehouse_id"  validate:"required"`
	Quantity     int       `json:"quantity"      validate:"min=0"`
	ReorderLevel int       `json:"reorder_level" validate:"min=0"`
}

func (r CreateInventoryRequest) ToModel() *model.Inventory {
	return &model.Inventory{
		ProductID:    r.ProductID,
		WarehouseID:  r.WarehouseID,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
	}
}

// UpdateInventoryRequest never touches quantity; stock only moves through
// adjustments and transfers so every change leaves a transaction behind.
type UpdateInventoryRequest struct {
	ReorderLevel *int `json:"reorder_level" validate:"omitempty,min=0"`
}

func (r UpdateInventoryRequest) Apply(i *model.Inventory) {
	if r.ReorderLevel != nil {
		i.ReorderLevel = *r.ReorderLevel
	}
}

// AdjustInventoryRequest applies a signed quantity delta.
type AdjustInventoryRequest struct {
	Quantity int     `json:"quantity" validate:"required"`
	Notes    *string `json:"notes"    validate:"omitempty,max=500"`
}

// ── Transfers ─────────────────────────────────────────────────────────────────

type CreateTransferRequest struct {
	ProductID       uuid.UUID  `json:"product_id"        validate:"required"`
	FromWarehouseID uuid.UUID  `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uuid.UUID  `json:"to_warehouse_id"   validate:"required"`
	Quantity        int        `json:"quantity"          validate:"required,gt=0"`
	StatusID        *uuid.UUID `json:"status_id"`
	Reason          *string    `json:"reason"            validate:"omitempty,max=500"`
	TransferDate    *Date      `json:"transfer_date"     validate:"required"`
}

func (r CreateTransferRequest) ToModel() *model.InventoryTransfer {
	return &model.InventoryTransfer{
		ProductID:       r.ProductID,
		FromWarehouseID: r.FromWarehouseID,
		ToWarehouseID:   r.ToWarehouseID,
		Quantity:        r.Quantity,
		StatusID:        r.StatusID,
		Reason:          r.Reason,
		TransferDate:    r.TransferDate.Time,
	}
}

type UpdateTransferRequest struct {
	FromWarehouseID *uuid.UUID `json:"from_warehouse_id"`
	ToWarehouseID   *uuid.UUID `json:"to_warehouse_id"`
	Quantity        *int       `json:"quantity"      validate:"omitempty,gt=0"`
	StatusID        *uuid.UUID `json:"status_id"`
	Reason          *string    `json:"reason"        validate:"omitempty,max=500"`
	TransferDate    *Date      `json:"transfer_date"`
}

func (r UpdateTransferRequest) Apply(t *model.InventoryTransfer) {
	if r.FromWarehouseID != nil {
		t.FromWarehouseID = *r.FromWarehouseID
	}
	if r.ToWarehouseID != nil {
		t.ToWarehouseID = *r.ToWarehouseID
	}
	if r.Quantity != nil {
		t.Quantity = *r.Quantity
	}
	if r.StatusID != nil {
		t.StatusID = r.StatusID
	}
	if r.Reason != nil {
		t.Reason = r.Reason
	}
	if r.TransferDate != nil {
		t.TransferDate = r.TransferDate.Time
	}
}
