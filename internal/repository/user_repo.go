package repository

import (
	"context"

	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository covers the user lookups that the generic CRUD does not.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// FindByEmail matches case-insensitively and preloads roles.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ListByRoleIDs returns every user holding at least one of roleIDs, once.
	ListByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) ([]model.User, error)
	IDs(ctx context.Context) ([]uuid.UUID, error)
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Roles").
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) ListByRoleIDs(ctx context.Context, roleIDs []uuid.UUID) ([]model.User, error) {
	users := make([]model.User, 0)
	if len(roleIDs) == 0 {
		return users, nil
	}
	holders := r.db.Table(model.TableUserRoles).Select("user_id").Where("role_id IN ?", roleIDs)
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id IN (?)", holders).
		Order("name").
		Find(&users).Error
	return users, err
}

func (r *userRepo) IDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.User{}).Order("created_at").Pluck("id", &ids).Error
	return ids, err
}

func (r *userRepo) ReplaceRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	return replaceJoinRows(ctx, r.db, model.TableUserRoles, "user_id", userID, "role_id", roleIDs)
}
