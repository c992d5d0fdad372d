package models

import "time"

// ExitPermissionStatus tracks whether a pickup has happened.
type ExitPermissionStatus string

const (
	ExitStatusPendingPickup ExitPermissionStatus = "pending_pickup"
	ExitStatusCompleted     ExitPermissionStatus = "completed"
)

// ExitPermissionWindow is how long a permission stays usable after creation.
const ExitPermissionWindow = time.Hour

// ExitPermission authorizes a guardian to pick a student up during the day.
type ExitPermission struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	SchoolID    uint                 `gorm:"index;not null" json:"school_id"`
	StudentID   string               `gorm:"size:64;index;not null" json:"student_id"`
	StudentName string               `gorm:"size:255" json:"student_name"`
	Status      ExitPermissionStatus `gorm:"size:32;not null;default:pending_pickup" json:"status"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Active reports whether the permission can still be used at the given time.
func (p ExitPermission) Active(now time.Time) bool {
	return p.Status == ExitStatusPendingPickup && now.Sub(p.CreatedAt) <= ExitPermissionWindow
}
