package model

import (
	"time"

	"github.com/google/uuid"
)

// File is an uploaded attachment. Path is relative to the storage root.
type File struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OriginalName string     `gorm:"not null" json:"original_name"`
	Path         string     `gorm:"uniqueIndex;not null" json:"path"`
	MimeType     string     `gorm:"not null" json:"mime_type"`
	Size         int64      `gorm:"not null" json:"size"`
	Folder       string     `gorm:"not null;index" json:"folder"`
	Type         *string    `json:"type"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Uploader *User `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}
