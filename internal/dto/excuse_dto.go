package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ExcuseCreateRequest is the parent-facing payload for filing an excuse.
type ExcuseCreateRequest struct {
	StudentID     string `json:"student_id" validate:"omitempty,max=64"`
	StudentName   string `json:"student_name" validate:"required,max=255"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason        string `json:"reason" validate:"required,min=3"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url,max=512"`
}

// ExcuseReviewRequest carries the staff approve/reject decision.
type ExcuseReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// ExcuseResponse serializes an excuse request.
type ExcuseResponse struct {
	ID            uint      `json:"id"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewExcuseResponse converts an excuse model into a DTO.
func NewExcuseResponse(model models.ExcuseRequest) ExcuseResponse {
	return ExcuseResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		StudentName:   model.StudentName,
		Date:          model.Date,
		Status:        string(model.Status),
		Reason:        model.Reason,
		AttachmentURL: model.AttachmentURL,
		CreatedAt:     model.CreatedAt,
	}
}

// NewExcuseResponseSlice converts a slice of models into DTOs.
func NewExcuseResponseSlice(requests []models.ExcuseRequest) []ExcuseResponse {
	out := make([]ExcuseResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, NewExcuseResponse(request))
	}
	return out
}
