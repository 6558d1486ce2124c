package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is a category of event users can be notified about.
type NotificationType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NotificationChannel is a delivery medium (email, database, sms...).
type NotificationChannel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Key         string    `gorm:"uniqueIndex;not null" json:"key"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NotificationSetting stores one user's preference for a (type, channel)
// pair. At most one row exists per triple; a missing row means "use the
// default", not "disabled".
type NotificationSetting struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_settings_triple,priority:1" json:"user_id"`
	NotificationTypeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_settings_triple,priority:2" json:"notification_type_id"`
	NotificationChannelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_settings_triple,priority:3" json:"notification_channel_id"`
	Enabled               bool      `gorm:"not null" json:"enabled"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	NotificationType    *NotificationType    `json:"notification_type,omitempty"`
	NotificationChannel *NotificationChannel `json:"notification_channel,omitempty"`
}
