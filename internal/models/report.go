package models

import (
	"time"

	"gorm.io/datatypes"
)

// GeneratedReport stores an AI-written narrative summary for a student so it
// can be reprinted without another model call. Raw keeps the provider
// response metadata (model, token usage) for auditing.
type GeneratedReport struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SchoolID    uint              `gorm:"index;not null" json:"school_id"`
	StudentID   string            `gorm:"size:64;index;not null" json:"student_id"`
	StudentName string            `gorm:"size:255" json:"student_name"`
	Content     string            `gorm:"type:text;not null" json:"content"`
	Raw         datatypes.JSONMap `gorm:"type:json" json:"raw,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
