package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// StudentCreateRequest registers a student under the active school.
type StudentCreateRequest struct {
	StudentID     string `json:"student_id" validate:"required,max=64"`
	Name          string `json:"name" validate:"required,max=255"`
	Grade         string `json:"grade" validate:"required,max=64"`
	ClassName     string `json:"class_name" validate:"required,max=64"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	ParentCivilID string `json:"parent_civil_id" validate:"omitempty,max=32"`
}

// StudentUpdateRequest patches student fields.
type StudentUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=255"`
	Grade     *string `json:"grade" validate:"omitempty,max=64"`
	ClassName *string `json:"class_name" validate:"omitempty,max=64"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

// StudentResponse serializes a student row.
type StudentResponse struct {
	ID            uint      `json:"id"`
	StudentID     string    `json:"student_id"`
	Name          string    `json:"name"`
	Grade         string    `json:"grade"`
	ClassName     string    `json:"class_name"`
	Phone         string    `json:"phone,omitempty"`
	ParentCivilID string    `json:"parent_civil_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		Name:          model.Name,
		Grade:         model.Grade,
		ClassName:     model.ClassName,
		Phone:         model.Phone,
		ParentCivilID: model.ParentCivilID,
		CreatedAt:     model.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, NewStudentResponse(student))
	}
	return out
}
