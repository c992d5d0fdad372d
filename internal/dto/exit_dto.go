package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ExitPermissionCreateRequest issues a pickup permission for a student.
type ExitPermissionCreateRequest struct {
	StudentID   string `json:"student_id" validate:"required,max=64"`
	StudentName string `json:"student_name" validate:"required,max=255"`
}

// ExitPermissionResponse serializes an exit permission. Active reflects the
// one-hour validity window at response time.
type ExitPermissionResponse struct {
	ID          uint       `json:"id"`
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name"`
	Status      string     `json:"status"`
	Active      bool       `json:"active"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewExitPermissionResponse converts a model into a DTO, evaluating the
// validity window against now.
func NewExitPermissionResponse(model models.ExitPermission, now time.Time) ExitPermissionResponse {
	return ExitPermissionResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		StudentName: model.StudentName,
		Status:      string(model.Status),
		Active:      model.Active(now),
		CompletedAt: model.CompletedAt,
		CreatedAt:   model.CreatedAt,
	}
}

// NewExitPermissionResponseSlice converts a slice of models into DTOs.
func NewExitPermissionResponseSlice(permissions []models.ExitPermission, now time.Time) []ExitPermissionResponse {
	out := make([]ExitPermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		out = append(out, NewExitPermissionResponse(permission, now))
	}
	return out
}
