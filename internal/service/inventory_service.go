package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/metrics"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NotificationLowStock is sent when an adjustment leaves stock at or below
// the reorder level.
const NotificationLowStock = "low_stock"

// InventoryService owns every stock mutation. Each one writes an
// InventoryTransaction in the same database transaction.
type InventoryService interface {
	Create(ctx context.Context, inv *model.Inventory, actor uuid.UUID) error
	// Adjust applies a signed delta; a result below zero is a conflict.
	Adjust(ctx context.Context, id uuid.UUID, delta int, notes *string, actor uuid.UUID) (*model.Inventory, error)
	// FinalizeTransfer moves the transfer quantity between warehouses once.
	FinalizeTransfer(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*model.InventoryTransfer, error)
}

type inventoryService struct {
	repo     repository.InventoryRepository
	notifier Notifier
}

func NewInventoryService(repo repository.InventoryRepository, notifier Notifier) InventoryService {
	return &inventoryService{repo: repo, notifier: notifier}
}

func actorRef(actor uuid.UUID) *uuid.UUID {
	if actor == uuid.Nil {
		return nil
	}
	return &actor
}

func (s *inventoryService) Create(ctx context.Context, inv *model.Inventory, actor uuid.UUID) error {
	if inv.Quantity < 0 {
		return apierror.Validation("Quantity may not be negative")
	}
	recorded := false
	err := s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, inv); err != nil {
			return err
		}
		if inv.Quantity == 0 {
			return nil
		}
		recorded = true
		return s.repo.CreateTransactionTx(tx, &model.InventoryTransaction{
			InventoryID:     inv.ID,
			UserID:          actorRef(actor),
			TransactionType: model.TxInitial,
			Quantity:        inv.Quantity,
			QuantityBefore:  0,
			QuantityAfter:   inv.Quantity,
		})
	})
	if err != nil {
		return err
	}
	if recorded {
		metrics.InventoryTransactionsTotal.WithLabelValues(model.TxInitial).Inc()
	}
	return nil
}

func (s *inventoryService) Adjust(ctx context.Context, id uuid.UUID, delta int, notes *string, actor uuid.UUID) (*model.Inventory, error) {
	if delta == 0 {
		return nil, apierror.Validation("Quantity must not be zero")
	}
	var inv *model.Inventory
	err := s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		inv, err = s.repo.LockByIDTx(tx, id)
		if err != nil {
			return err
		}
		before := inv.Quantity
		after := before + delta
		if after < 0 {
			return apierror.Conflict(fmt.Sprintf("Insufficient stock: %d available", before))
		}
		if err := s.repo.SetQuantityTx(tx, inv.ID, after); err != nil {
			return err
		}
		inv.Quantity = after
		return s.repo.CreateTransactionTx(tx, &model.InventoryTransaction{
			InventoryID:     inv.ID,
			UserID:          actorRef(actor),
			TransactionType: model.TxAdjustment,
			Quantity:        delta,
			QuantityBefore:  before,
			QuantityAfter:   after,
			Notes:           notes,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.InventoryTransactionsTotal.WithLabelValues(model.TxAdjustment).Inc()

	if inv.Quantity <= inv.ReorderLevel && actor != uuid.Nil && s.notifier != nil {
		subject := "Low stock alert"
		body := fmt.Sprintf("Inventory %s is at %d units (reorder level %d).", inv.ID, inv.Quantity, inv.ReorderLevel)
		if err := s.notifier.Notify(ctx, actor, NotificationLowStock, subject, body); err != nil {
			log.Warn().Err(err).Str("inventory_id", inv.ID.String()).Msg("low stock notification failed")
		}
	}
	return inv, nil
}

func (s *inventoryService) FinalizeTransfer(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*model.InventoryTransfer, error) {
	var transfer *model.InventoryTransfer
	err := s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		transfer, err = s.repo.LockTransferTx(tx, id)
		if err != nil {
			return err
		}
		if transfer.Finalized() {
			return apierror.Conflict("Transfer is already finalized")
		}

		src, err := s.repo.LockByProductWarehouseTx(tx, transfer.ProductID, transfer.FromWarehouseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Conflict("Source warehouse holds no stock of this product")
		}
		if err != nil {
			return err
		}
		if src.Quantity < transfer.Quantity {
			return apierror.Conflict(fmt.Sprintf("Insufficient stock: %d available", src.Quantity))
		}

		dst, err := s.repo.LockByProductWarehouseTx(tx, transfer.ProductID, transfer.ToWarehouseID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			dst = &model.Inventory{ProductID: transfer.ProductID, WarehouseID: transfer.ToWarehouseID}
			err = s.repo.CreateTx(tx, dst)
		}
		if err != nil {
			return err
		}

		if err := s.move(tx, src, -transfer.Quantity, model.TxTransferOut, transfer.ID, actor); err != nil {
			return err
		}
		if err := s.move(tx, dst, transfer.Quantity, model.TxTransferIn, transfer.ID, actor); err != nil {
			return err
		}

		now := time.Now()
		transfer.FinalizedAt = &now
		transfer.FinalizedBy = actorRef(actor)
		return s.repo.SaveTransferTx(tx, transfer)
	})
	if err != nil {
		return nil, err
	}
	metrics.InventoryTransactionsTotal.WithLabelValues(model.TxTransferOut).Inc()
	metrics.InventoryTransactionsTotal.WithLabelValues(model.TxTransferIn).Inc()
	return transfer, nil
}

func (s *inventoryService) move(tx *gorm.DB, inv *model.Inventory, delta int, txType string, ref uuid.UUID, actor uuid.UUID) error {
	before := inv.Quantity
	after := before + delta
	if err := s.repo.SetQuantityTx(tx, inv.ID, after); err != nil {
		return err
	}
	inv.Quantity = after
	return s.repo.CreateTransactionTx(tx, &model.InventoryTransaction{
		InventoryID:     inv.ID,
		UserID:          actorRef(actor),
		TransactionType: txType,
		Quantity:        delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReferenceID:     &ref,
	})
}

// ErrTransferFinalized rejects any change to a transfer that already moved
// stock.
var ErrTransferFinalized = apierror.Conflict("Transfer is finalized and can no longer change")

// TransferHooks keep transfers between two different warehouses and freeze
// them once finalized.
func TransferHooks() Hooks[model.InventoryTransfer] {
	return Hooks[model.InventoryTransfer]{
		BeforeSave: func(_ context.Context, t *model.InventoryTransfer) error {
			if t.FromWarehouseID == t.ToWarehouseID {
				return apierror.Validation("Source and destination warehouses must differ")
			}
			return nil
		},
		BeforeChange: func(_ context.Context, t *model.InventoryTransfer) error {
			if t.Finalized() {
				return ErrTransferFinalized
			}
			return nil
		},
	}
}
