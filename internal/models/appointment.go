package models

import "time"

// AppointmentStatus tracks the lifecycle of a booked appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentSlot is an admin-published window parents can book into.
type AppointmentSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SchoolID  uint      `gorm:"index;not null" json:"school_id"`
	Date      string    `gorm:"size:10;index;not null" json:"date"`
	StartTime string    `gorm:"size:8;not null" json:"start_time"`
	Capacity  int       `gorm:"default:1" json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Appointment is a parent's booking against a slot. A parent may hold at
// most one pending appointment at a time, enforced at booking.
type Appointment struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	SchoolID      uint              `gorm:"index;not null" json:"school_id"`
	SlotID        uint              `gorm:"index;not null" json:"slot_id"`
	Slot          AppointmentSlot   `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
	StudentID     string            `gorm:"size:64;index" json:"student_id"`
	ParentCivilID string            `gorm:"size:32;index;not null" json:"parent_civil_id"`
	Status        AppointmentStatus `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
