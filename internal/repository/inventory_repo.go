package repository

import (
	"context"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository groups the stock writes that must share a transaction.
// The *Tx methods run on the tx handed to the WithTx callback.
type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	CreateTx(tx *gorm.DB, inv *model.Inventory) error
	// LockByIDTx loads the row FOR UPDATE.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventory, error)
	// LockByProductWarehouseTx returns gorm.ErrRecordNotFound when absent.
	LockByProductWarehouseTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.Inventory, error)
	SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error
	CreateTransactionTx(tx *gorm.DB, t *model.InventoryTransaction) error

	LockTransferTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryTransfer, error)
	SaveTransferTx(tx *gorm.DB, t *model.InventoryTransfer) error
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Omit(clause.Associations).Create(inv).Error
}

func (r *inventoryRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) LockByProductWarehouseTx(tx *gorm.DB, productID, warehouseID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Inventory{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *inventoryRepo) CreateTransactionTx(tx *gorm.DB, t *model.InventoryTransaction) error {
	return tx.Omit(clause.Associations).Create(t).Error
}

func (r *inventoryRepo) LockTransferTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryTransfer, error) {
	var t model.InventoryTransfer
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *inventoryRepo) SaveTransferTx(tx *gorm.DB, t *model.InventoryTransfer) error {
	return tx.Omit(clause.Associations).Save(t).Error
}
