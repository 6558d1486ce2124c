package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *model.User `json:"user"`
}

// ── Users ─────────────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsActive *bool  `json:"is_active"`
}

func (r CreateUserRequest) ToModel() *model.User {
	return &model.User{Name: r.Name, Email: r.Email, Password: r.Password, IsActive: boolOr(r.IsActive, true)}
}

type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateUserRequest) Apply(u *model.User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Password != nil {
		u.Password = *r.Password
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}

// ── Roles / permissions ───────────────────────────────────────────────────────

type CreateRoleRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r CreateRoleRequest) ToModel() *model.Role {
	return &model.Role{Name: r.Name, Description: r.Description}
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r UpdateRoleRequest) Apply(role *model.Role) {
	if r.Name != nil {
		role.Name = *r.Name
	}
	if r.Description != nil {
		role.Description = r.Description
	}
}

type CreatePermissionRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r CreatePermissionRequest) ToModel() *model.Permission {
	return &model.Permission{Name: r.Name, Description: r.Description}
}

type UpdatePermissionRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r UpdatePermissionRequest) Apply(p *model.Permission) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
}

// RoleIDsRequest replaces a role set; an empty list clears it.
type RoleIDsRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" validate:"required"`
}

// PermissionIDsRequest replaces a role's permissions; an empty list clears them.
type PermissionIDsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids" validate:"required"`
}
