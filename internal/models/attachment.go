package models

import "time"

// Attachment stores metadata about an uploaded file linked to an excuse
// request, observation or report.
type Attachment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SchoolID   uint      `gorm:"not null;index" json:"school_id"`
	UploaderID *uint     `gorm:"index" json:"uploader_id,omitempty"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	URL        string    `gorm:"size:512;not null" json:"url"`
	MimeType   string    `gorm:"size:100;not null" json:"mime_type"`
	SizeBytes  int64     `gorm:"not null" json:"size_bytes"`
	Checksum   string    `gorm:"size:64;not null" json:"checksum"`
	CreatedAt  time.Time `json:"created_at"`
}
