package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named permission bundle. Subordinates are the roles whose holders
// are visible to holders of this role; the relation is directed and may cycle.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Permissions  []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	Subordinates []Role       `gorm:"many2many:role_subordinates;joinForeignKey:RoleID;joinReferences:SubordinateID" json:"subordinates,omitempty"`
}

// Permission is a single grantable capability.
type Permission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Roles []Role `gorm:"many2many:role_permissions" json:"roles,omitempty"`
}

// Join tables, named here so repositories can query them directly.
const (
	TableUserRoles        = "user_roles"
	TableRolePermissions  = "role_permissions"
	TableRoleSubordinates = "role_subordinates"
)
