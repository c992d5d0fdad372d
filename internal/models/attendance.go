package models

import "time"

// AttendanceStatus represents the per-student status on a daily sheet.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
	AttendanceStatusLate    AttendanceStatus = "LATE"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// SheetKind names the two shapes a daily sheet can take. Sparse sheets carry
// only absent/late rows (students without a row are implicitly present);
// full sheets carry an explicit row per student. The two shapes are never
// aggregated through the same code path.
type SheetKind string

const (
	SheetKindSparse SheetKind = "sparse"
	SheetKindFull   SheetKind = "full"
)

// AttendanceSheet is one class's attendance for one calendar date. Entries
// is a nested list, not one row per student at the top level.
type AttendanceSheet struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SchoolID  uint              `gorm:"index;not null" json:"school_id"`
	Date      string            `gorm:"size:10;index;not null" json:"date"`
	Grade     string            `gorm:"size:64;not null" json:"grade"`
	ClassName string            `gorm:"size:64;not null" json:"class_name"`
	Kind      SheetKind         `gorm:"size:16;not null;default:sparse" json:"kind"`
	Entries   []AttendanceEntry `gorm:"constraint:OnDelete:CASCADE" json:"entries"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// AttendanceEntry is a single student's status within a sheet. StudentName
// is denormalized for display and must not be treated as authoritative.
type AttendanceEntry struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	AttendanceSheetID uint             `gorm:"index;not null" json:"attendance_sheet_id"`
	StudentID         string           `gorm:"size:64;index" json:"student_id"`
	StudentName       string           `gorm:"size:255" json:"student_name"`
	Status            AttendanceStatus `gorm:"size:16;not null" json:"status"`
}

// AttendanceFilter scopes sheet listing queries.
type AttendanceFilter struct {
	Date      string
	DateFrom  string
	DateTo    string
	Grade     string
	ClassName string
	StudentID string
}
