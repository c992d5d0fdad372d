package models

import "time"

// ExcuseStatus captures the review state of an excuse request.
type ExcuseStatus string

const (
	ExcuseStatusPending  ExcuseStatus = "PENDING"
	ExcuseStatusApproved ExcuseStatus = "APPROVED"
	ExcuseStatusRejected ExcuseStatus = "REJECTED"
)

// Valid returns true when the status is a supported value.
func (s ExcuseStatus) Valid() bool {
	switch s {
	case ExcuseStatusPending, ExcuseStatusApproved, ExcuseStatusRejected:
		return true
	default:
		return false
	}
}

// ExcuseRequest is a parent-filed excuse for an absence on one date.
// StudentID may be empty on historical rows created before the student
// linkage was consistently populated; StudentName is kept as a fallback
// join key for those rows.
type ExcuseRequest struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	SchoolID      uint         `gorm:"index;not null" json:"school_id"`
	StudentID     string       `gorm:"size:64;index" json:"student_id"`
	StudentName   string       `gorm:"size:255" json:"student_name"`
	Date          string       `gorm:"size:10;index;not null" json:"date"`
	Status        ExcuseStatus `gorm:"size:16;not null;default:PENDING" json:"status"`
	Reason        string       `gorm:"type:text" json:"reason"`
	AttachmentURL string       `gorm:"size:512" json:"attachment_url"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
