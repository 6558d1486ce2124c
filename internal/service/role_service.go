package service

import (
	"context"
	"errors"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/rbac"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleService resolves subordinate users and rewrites role grants.
type RoleService interface {
	// SubordinateUsers returns every user holding a role subordinate to one of
	// the user's roles. Each user appears once.
	SubordinateUsers(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	SyncSubordinates(ctx context.Context, roleID uuid.UUID, subordinateIDs []uuid.UUID) error
	SyncPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	SyncUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
}

type roleService struct {
	roles repository.RoleRepository
	users repository.UserRepository
	mode  rbac.Expansion
}

func NewRoleService(roles repository.RoleRepository, users repository.UserRepository, mode rbac.Expansion) RoleService {
	return &roleService{roles: roles, users: users, mode: mode}
}

func (s *roleService) SubordinateUsers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, err
	}

	roleIDs, err := s.roles.RoleIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []model.User{}, nil
	}

	// Single-level expansion only needs the edges leaving the user's roles.
	var edges []rbac.Edge
	if s.mode == rbac.Transitive {
		edges, err = s.roles.Edges(ctx)
	} else {
		edges, err = s.roles.Edges(ctx, roleIDs...)
	}
	if err != nil {
		return nil, err
	}

	subordinates := rbac.NewGraph(edges).Subordinates(roleIDs, s.mode)
	if len(subordinates) == 0 {
		return []model.User{}, nil
	}
	return s.users.ListByRoleIDs(ctx, subordinates.Slice())
}

func (s *roleService) SyncSubordinates(ctx context.Context, roleID uuid.UUID, subordinateIDs []uuid.UUID) error {
	if err := s.ensureRoles(ctx, []uuid.UUID{roleID}); err != nil {
		return err
	}
	if err := s.ensureRoles(ctx, subordinateIDs); err != nil {
		return err
	}
	return s.roles.ReplaceSubordinates(ctx, roleID, subordinateIDs)
}

func (s *roleService) SyncPermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if err := s.ensureRoles(ctx, []uuid.UUID{roleID}); err != nil {
		return err
	}
	ids := distinct(permissionIDs)
	n, err := s.roles.CountPermissions(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return apierror.NotFound("Permission not found")
	}
	return s.roles.ReplacePermissions(ctx, roleID, permissionIDs)
}

func (s *roleService) SyncUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("User not found")
		}
		return err
	}
	if err := s.ensureRoles(ctx, roleIDs); err != nil {
		return err
	}
	return s.users.ReplaceRoles(ctx, userID, roleIDs)
}

func (s *roleService) ensureRoles(ctx context.Context, ids []uuid.UUID) error {
	ids = distinct(ids)
	n, err := s.roles.CountRoles(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return apierror.NotFound("Role not found")
	}
	return nil
}
