package dto

import (
	"github.com/alimarchal/maharat-sub001/internal/model"

	"github.com/google/uuid"
)

// ── Notification types / channels ─────────────────────────────────────────────

type CreateNotificationTypeRequest struct {
	Key         string  `json:"key"         validate:"required,max=50,excludesall= "`
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r CreateNotificationTypeRequest) ToModel() *model.NotificationType {
	return &model.NotificationType{Key: r.Key, Name: r.Name, Description: r.Description, IsActive: boolOr(r.IsActive, true)}
}

type UpdateNotificationTypeRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateNotificationTypeRequest) Apply(t *model.NotificationType) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Description != nil {
		t.Description = r.Description
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
}

type CreateNotificationChannelRequest struct {
	Key         string  `json:"key"         validate:"required,max=50,excludesall= "`
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r CreateNotificationChannelRequest) ToModel() *model.NotificationChannel {
	return &model.NotificationChannel{Key: r.Key, Name: r.Name, Description: r.Description, IsActive: boolOr(r.IsActive, true)}
}

type UpdateNotificationChannelRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateNotificationChannelRequest) Apply(c *model.NotificationChannel) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}

// ── Settings ──────────────────────────────────────────────────────────────────

// SettingInput is one (type, channel, enabled) tuple of a bulk update.
type SettingInput struct {
	TypeID    uuid.UUID `json:"type_id"    validate:"required"`
	ChannelID uuid.UUID `json:"channel_id" validate:"required"`
	Enabled   *bool     `json:"enabled"    validate:"required"`
}

// UpdateSettingsRequest upserts every tuple for the target user.
type UpdateSettingsRequest struct {
	Settings []SettingInput `json:"settings" validate:"required,min=1,dive"`
}

// SetupDefaultsResponse reports how many rows a defaults run inserted.
type SetupDefaultsResponse struct {
	Created int `json:"created"`
}
