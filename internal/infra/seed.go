package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedOptions describes the bootstrap administrator.
type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminRole     string
}

// SeedResult reports what a seed run inserted.
type SeedResult struct {
	AdminCreated bool
	Types        int64
	Channels     int64
}

var seedTypes = []model.NotificationType{
	{Key: "low_stock", Name: "Low stock", IsActive: true},
	{Key: "rfq_sent", Name: "RFQ sent", IsActive: true},
}

var seedChannels = []model.NotificationChannel{
	{Key: "email", Name: "Email", IsActive: true},
	{Key: "database", Name: "In-app", IsActive: true},
}

// Seed inserts the admin role, the admin user and the base notification
// catalogue. Existing rows are left untouched, so it can run repeatedly.
func Seed(ctx context.Context, db *gorm.DB, opts SeedOptions) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		types := append([]model.NotificationType(nil), seedTypes...)
		r := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).Create(&types)
		if r.Error != nil {
			return fmt.Errorf("seed notification types: %w", r.Error)
		}
		res.Types = r.RowsAffected

		channels := append([]model.NotificationChannel(nil), seedChannels...)
		r = tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).Create(&channels)
		if r.Error != nil {
			return fmt.Errorf("seed notification channels: %w", r.Error)
		}
		res.Channels = r.RowsAffected

		role := model.Role{Name: opts.AdminRole}
		if err := tx.Where("name = ?", opts.AdminRole).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed admin role: %w", err)
		}

		var user model.User
		err := tx.Where("LOWER(email) = LOWER(?)", opts.AdminEmail).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if opts.AdminPassword == "" {
				return errors.New("seed admin user: password required for a new user")
			}
			user = model.User{Name: opts.AdminName, Email: opts.AdminEmail, Password: opts.AdminPassword, IsActive: true}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed admin user: %w", err)
			}
			res.AdminCreated = true
		case err != nil:
			return fmt.Errorf("seed admin user: %w", err)
		}

		if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
			return fmt.Errorf("seed admin role grant: %w", err)
		}
		return nil
	})
	return res, err
}
