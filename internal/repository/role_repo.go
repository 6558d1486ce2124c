package repository

import (
	"context"

	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/rbac"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository reads and rewrites the role graph and role grants.
type RoleRepository interface {
	// Edges returns subordinate edges. With no role ids it returns every edge.
	Edges(ctx context.Context, roleIDs ...uuid.UUID) ([]rbac.Edge, error)
	RoleIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountRoles(ctx context.Context, ids []uuid.UUID) (int64, error)
	CountPermissions(ctx context.Context, ids []uuid.UUID) (int64, error)
	ReplaceSubordinates(ctx context.Context, roleID uuid.UUID, subordinateIDs []uuid.UUID) error
	ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
}

type roleRepo struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &roleRepo{db: db} }

func (r *roleRepo) Edges(ctx context.Context, roleIDs ...uuid.UUID) ([]rbac.Edge, error) {
	var edges []rbac.Edge
	q := r.db.WithContext(ctx).Table(model.TableRoleSubordinates).Select("role_id, subordinate_id")
	if len(roleIDs) > 0 {
		q = q.Where("role_id IN ?", roleIDs)
	}
	err := q.Scan(&edges).Error
	return edges, err
}

func (r *roleRepo) RoleIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Table(model.TableUserRoles).
		Where("user_id = ?", userID).
		Pluck("role_id", &ids).Error
	return ids, err
}

func (r *roleRepo) CountRoles(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return countByIDs(ctx, r.db, &model.Role{}, ids)
}

func (r *roleRepo) CountPermissions(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return countByIDs(ctx, r.db, &model.Permission{}, ids)
}

func (r *roleRepo) ReplaceSubordinates(ctx context.Context, roleID uuid.UUID, subordinateIDs []uuid.UUID) error {
	return replaceJoinRows(ctx, r.db, model.TableRoleSubordinates, "role_id", roleID, "subordinate_id", subordinateIDs)
}

func (r *roleRepo) ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return replaceJoinRows(ctx, r.db, model.TableRolePermissions, "role_id", roleID, "permission_id", permissionIDs)
}

// replaceJoinRows rewrites every join row owned by ownerID in one transaction.
func replaceJoinRows(ctx context.Context, db *gorm.DB, table, ownerCol string, ownerID uuid.UUID, refCol string, refIDs []uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+table+" WHERE "+ownerCol+" = ?", ownerID).Error; err != nil {
			return err
		}
		refIDs = uniqueIDs(refIDs)
		if len(refIDs) == 0 {
			return nil
		}
		rows := make([]map[string]interface{}, 0, len(refIDs))
		for _, id := range refIDs {
			rows = append(rows, map[string]interface{}{ownerCol: ownerID, refCol: id})
		}
		return tx.Table(table).Create(rows).Error
	})
}
