package models

import "time"

// DateLayout is the calendar-date format used across attendance, excuse and
// behavior records. Dates in this format compare correctly as plain strings.
const DateLayout = "2006-01-02"

// School is the tenant every other record is scoped to.
type School struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
