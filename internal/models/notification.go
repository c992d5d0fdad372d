package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification represents a push notification delivered to a parent or staff
// member when a new record is inserted (excuse decided, exit permission
// issued, observation published).
type Notification struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SchoolID  uint              `gorm:"index;not null" json:"school_id"`
	UserID    string            `gorm:"size:64;index" json:"user_id"`
	Type      string            `gorm:"size:64" json:"type"`
	Message   string            `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	Read      bool              `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
