package models

import "time"

// FollowUpStatus tracks the lifecycle of an absence follow-up case.
type FollowUpStatus string

const (
	FollowUpStatusOpen       FollowUpStatus = "open"
	FollowUpStatusLetterSent FollowUpStatus = "letter_sent"
	FollowUpStatusResolved   FollowUpStatus = "resolved"
)

// AbsenceFollowUp records that a student's consecutive-absence run crossed
// the warning threshold and what staff did about it. It is persisted so the
// distinction between "flagged" and "letter already printed" survives a
// reload instead of living only in UI state.
type AbsenceFollowUp struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SchoolID    uint           `gorm:"index;not null" json:"school_id"`
	StudentID   string         `gorm:"size:64;index;not null" json:"student_id"`
	StudentName string         `gorm:"size:255" json:"student_name"`
	TriggerDate string         `gorm:"size:10;not null" json:"trigger_date"`
	RunLength   int            `json:"run_length"`
	Status      FollowUpStatus `gorm:"size:16;not null;default:open" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
