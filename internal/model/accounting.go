package model

import (
	"time"

	"github.com/google/uuid"
)

// FiscalYear bounds an accounting period.
type FiscalYear struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	IsClosed  bool      `gorm:"not null" json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountCode is a node of the chart of accounts.
type AccountCode struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Name        string     `gorm:"not null" json:"name"`
	AccountType string     `gorm:"type:varchar(20);not null" json:"account_type"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Parent   *AccountCode  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []AccountCode `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
