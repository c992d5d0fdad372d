package models

import "time"

// Student represents a learner registered at a school. StudentID is the
// tenant-unique code used as the join key across attendance, excuse and
// behavior records; Name is denormalized onto child records for display but
// the Student row remains the source of truth.
type Student struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SchoolID      uint      `gorm:"index;uniqueIndex:idx_school_student;not null" json:"school_id"`
	StudentID     string    `gorm:"size:64;uniqueIndex:idx_school_student;not null" json:"student_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Grade         string    `gorm:"size:64" json:"grade"`
	ClassName     string    `gorm:"size:64" json:"class_name"`
	Phone         string    `gorm:"size:32" json:"phone"`
	ParentCivilID string    `gorm:"size:32;index" json:"parent_civil_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	Grade     string
	ClassName string
	Page      int
	PageSize  int
}
