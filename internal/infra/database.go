package infra

import (
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseOptions tunes the connection pool.
type DatabaseOptions struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewDatabase opens a gorm connection backed by pgx. TranslateError maps
// unique and foreign-key violations onto gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated so services can classify them.
func NewDatabase(dsn string, opts DatabaseOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	return db, nil
}

// Migrate creates or updates every table, then applies the DDL AutoMigrate
// cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent statements; re-running them on a patched
// schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"case-insensitive user email index",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`},
		{"open transfers index",
			`CREATE INDEX IF NOT EXISTS idx_inventory_transfers_open ON inventory_transfers (created_at) WHERE finalized_at IS NULL`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
