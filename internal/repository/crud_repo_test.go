package repository

import (
	"testing"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=maharat dbname=maharat sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func updateSQL[T any](t *testing.T, m *T, opts ...CRUDOption) string {
	t.Helper()
	db := dryRunDB(t)
	repo := NewCRUDRepository[T](db, opts...).(*crudRepo[T])
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.updateScope(tx, m).Updates(m)
	})
}

func TestUpdate_SkipsReadOnlyColumns(t *testing.T) {
	inv := &model.Inventory{ID: uuid.New(), ProductID: uuid.New(), WarehouseID: uuid.New(), Quantity: 10, ReorderLevel: 3}

	sql := updateSQL(t, inv, WithReadOnlyColumns("quantity", "product_id", "warehouse_id"))
	assert.Contains(t, sql, `UPDATE "inventories" SET`)
	assert.Contains(t, sql, `"reorder_level"=3`)
	assert.NotContains(t, sql, `"quantity"=`)
	assert.NotContains(t, sql, `"product_id"=`)
	assert.NotContains(t, sql, `"created_at"=`)
	assert.Contains(t, sql, `"id" = '`+inv.ID.String()+`'`)
}

func TestUpdate_WithoutOptionsWritesEveryColumn(t *testing.T) {
	inv := &model.Inventory{ID: uuid.New(), Quantity: 10}
	sql := updateSQL(t, inv)
	assert.Contains(t, sql, `"quantity"=10`)
}

func TestUpdate_RowGuardNarrowsWhere(t *testing.T) {
	transfer := &model.InventoryTransfer{ID: uuid.New(), Quantity: 4}

	sql := updateSQL(t, transfer,
		WithReadOnlyColumns("finalized_at", "finalized_by"),
		WithRowGuard("finalized_at IS NULL", gorm.ErrInvalidData),
	)
	assert.Contains(t, sql, "finalized_at IS NULL")
	assert.NotContains(t, sql, `"finalized_at"=`)
	assert.NotContains(t, sql, `"finalized_by"=`)
	assert.Contains(t, sql, `"quantity"=4`)
}

func TestIDOf(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, idOf(&model.Brand{ID: id}))
	assert.Equal(t, uuid.Nil, idOf(&struct{ Name string }{}))
}
