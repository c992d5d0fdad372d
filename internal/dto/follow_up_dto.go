package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// FollowUpResponse describes an absence follow-up case.
type FollowUpResponse struct {
	ID          uint      `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	TriggerDate string    `json:"trigger_date"`
	RunLength   int       `json:"run_length"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFollowUpResponse maps a follow-up model to its response shape.
func NewFollowUpResponse(followUp models.AbsenceFollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:          followUp.ID,
		StudentID:   followUp.StudentID,
		StudentName: followUp.StudentName,
		TriggerDate: followUp.TriggerDate,
		RunLength:   followUp.RunLength,
		Status:      string(followUp.Status),
		CreatedAt:   followUp.CreatedAt,
		UpdatedAt:   followUp.UpdatedAt,
	}
}
