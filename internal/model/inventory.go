package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a physical stock location.
type Warehouse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Address   *string   `json:"address"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Inventories []Inventory `json:"inventories,omitempty"`
}

// Inventory is the on-hand quantity of a product in a warehouse.
type Inventory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventories_product_warehouse,priority:1" json:"product_id"`
	WarehouseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventories_product_warehouse,priority:2" json:"warehouse_id"`
	Quantity     int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	ReorderLevel int       `gorm:"not null" json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Product      *Product               `json:"product,omitempty"`
	Warehouse    *Warehouse             `json:"warehouse,omitempty"`
	Transactions []InventoryTransaction `json:"transactions,omitempty"`
}

// Inventory transaction types.
const (
	TxInitial     = "initial"
	TxAdjustment  = "adjustment"
	TxTransferOut = "transfer_out"
	TxTransferIn  = "transfer_in"
)

// InventoryTransaction is the immutable audit record of one quantity change.
// Rows are written only as a side effect of inventory mutations.
type InventoryTransaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InventoryID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"inventory_id"`
	UserID          *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	TransactionType string     `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Quantity        int        `gorm:"not null" json:"quantity"` // signed delta
	QuantityBefore  int        `gorm:"not null" json:"quantity_before"`
	QuantityAfter   int        `gorm:"not null" json:"quantity_after"`
	Notes           *string    `json:"notes"`
	ReferenceID     *uuid.UUID `gorm:"type:uuid;index" json:"reference_id"`
	CreatedAt       time.Time  `json:"created_at"`

	Inventory *Inventory `json:"inventory,omitempty"`
	User      *User      `json:"user,omitempty"`
}

// InventoryTransfer moves a product quantity between two warehouses. It stays
// editable until FinalizedAt is set.
type InventoryTransfer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	FromWarehouseID uuid.UUID  `gorm:"type:uuid;not null" json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID  `gorm:"type:uuid;not null" json:"to_warehouse_id"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	StatusID        *uuid.UUID `gorm:"type:uuid" json:"status_id"`
	Reason          *string    `json:"reason"`
	TransferDate    time.Time  `gorm:"type:date;not null" json:"transfer_date"`
	FinalizedAt     *time.Time `json:"finalized_at"`
	FinalizedBy     *uuid.UUID `gorm:"type:uuid" json:"finalized_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Product       *Product   `json:"product,omitempty"`
	FromWarehouse *Warehouse `gorm:"foreignKey:FromWarehouseID" json:"from_warehouse,omitempty"`
	ToWarehouse   *Warehouse `gorm:"foreignKey:ToWarehouseID" json:"to_warehouse,omitempty"`
	Status        *Status    `json:"status,omitempty"`
}

// Finalized reports whether the transfer has already moved stock.
func (t InventoryTransfer) Finalized() bool { return t.FinalizedAt != nil }
