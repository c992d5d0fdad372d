package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// SlotCreateRequest publishes a bookable appointment window.
type SlotCreateRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	Capacity  int    `json:"capacity" validate:"omitempty,gte=1,lte=50"`
}

// AppointmentBookRequest books a slot for a parent.
type AppointmentBookRequest struct {
	SlotID        uint   `json:"slot_id" validate:"required,gt=0"`
	StudentID     string `json:"student_id" validate:"omitempty,max=64"`
	ParentCivilID string `json:"parent_civil_id" validate:"required,max=32"`
}

// SlotResponse serializes an appointment slot with remaining capacity.
type SlotResponse struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
}

// AppointmentResponse serializes a booking.
type AppointmentResponse struct {
	ID            uint      `json:"id"`
	SlotID        uint      `json:"slot_id"`
	StudentID     string    `json:"student_id,omitempty"`
	ParentCivilID string    `json:"parent_civil_id"`
	Status        string    `json:"status"`
	Date          string    `json:"date,omitempty"`
	StartTime     string    `json:"start_time,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAppointmentResponse converts a booking model into a DTO.
func NewAppointmentResponse(model models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            model.ID,
		SlotID:        model.SlotID,
		StudentID:     model.StudentID,
		ParentCivilID: model.ParentCivilID,
		Status:        string(model.Status),
		Date:          model.Slot.Date,
		StartTime:     model.Slot.StartTime,
		CreatedAt:     model.CreatedAt,
	}
}

// NewAppointmentResponseSlice converts a slice of models into DTOs.
func NewAppointmentResponseSlice(appointments []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, NewAppointmentResponse(appointment))
	}
	return out
}
