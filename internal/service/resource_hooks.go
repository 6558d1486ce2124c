package service

import (
	"context"
	"errors"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// FiscalYearHooks reject periods that end before they start.
func FiscalYearHooks() Hooks[model.FiscalYear] {
	return Hooks[model.FiscalYear]{
		BeforeSave: func(_ context.Context, f *model.FiscalYear) error {
			if f.EndDate.Before(f.StartDate) {
				return apierror.Validation("End date must not be before start date")
			}
			return nil
		},
	}
}

// AccountCodeHooks keep the chart of accounts a forest: following parent
// links from any account never leads back to it.
func AccountCodeHooks(repo repository.CRUDRepository[model.AccountCode]) Hooks[model.AccountCode] {
	return Hooks[model.AccountCode]{
		BeforeSave: func(ctx context.Context, a *model.AccountCode) error {
			if a.ParentID == nil {
				return nil
			}
			if *a.ParentID == a.ID {
				return apierror.Validation("An account code cannot be its own parent")
			}
			if a.ID == uuid.Nil {
				return nil
			}
			seen := map[uuid.UUID]bool{a.ID: true}
			next := *a.ParentID
			for !seen[next] {
				seen[next] = true
				parent, err := repo.FindByID(ctx, next)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				if parent.ParentID == nil {
					return nil
				}
				next = *parent.ParentID
			}
			if next == a.ID {
				return apierror.Validation("Account code hierarchy may not contain a cycle")
			}
			return nil
		},
	}
}

// CatalogHooks drop cached settings matrices whenever a notification type or
// channel changes, since matrices are keyed by their keys.
func CatalogHooks[T any](n NotificationSettingsService) Hooks[T] {
	changed := func(ctx context.Context, _ *T) { n.CatalogChanged(ctx) }
	return Hooks[T]{AfterCreate: changed, AfterUpdate: changed, AfterDelete: changed}
}

// UserHooks queue default notification settings for every new user.
func UserHooks(jobs Jobs) Hooks[model.User] {
	return Hooks[model.User]{
		AfterCreate: func(ctx context.Context, u *model.User) {
			if jobs == nil {
				return
			}
			if err := jobs.EnqueueNotificationDefaults(ctx, u.ID); err != nil {
				log.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to enqueue notification defaults")
			}
		},
	}
}
