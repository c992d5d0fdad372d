package models

import "time"

// BehaviorRecord is an append-only log entry for a student violation.
// Unlike most entities it supports hard deletion.
type BehaviorRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SchoolID        uint      `gorm:"index;not null" json:"school_id"`
	StudentID       string    `gorm:"size:64;index;not null" json:"student_id"`
	StudentName     string    `gorm:"size:255" json:"student_name"`
	Date            string    `gorm:"size:10;index;not null" json:"date"`
	ViolationName   string    `gorm:"size:255;not null" json:"violation_name"`
	ViolationDegree string    `gorm:"size:64" json:"violation_degree"`
	ActionTaken     string    `gorm:"type:text" json:"action_taken"`
	Points          int       `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ObservationType classifies a staff observation about a student.
type ObservationType string

const (
	ObservationPositive ObservationType = "positive"
	ObservationNegative ObservationType = "negative"
	ObservationNeutral  ObservationType = "neutral"
)

// StudentObservation is a staff note visible to the parent. Parent
// acknowledgement is a one-way flag plus optional feedback text.
type StudentObservation struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SchoolID       uint            `gorm:"index;not null" json:"school_id"`
	StudentID      string          `gorm:"size:64;index;not null" json:"student_id"`
	Date           string          `gorm:"size:10;index;not null" json:"date"`
	Type           ObservationType `gorm:"size:16;not null" json:"type"`
	Content        string          `gorm:"type:text;not null" json:"content"`
	StaffName      string          `gorm:"size:255" json:"staff_name"`
	ParentViewed   bool            `gorm:"default:false" json:"parent_viewed"`
	ParentFeedback string          `gorm:"type:text" json:"parent_feedback"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
