package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ReportGenerateRequest asks for an AI-written narrative for a student.
type ReportGenerateRequest struct {
	StudentID string `json:"student_id" validate:"required,max=64"`
	Language  string `json:"language" validate:"omitempty,oneof=ar en"`
}

// ReportResponse serializes a generated narrative report.
type ReportResponse struct {
	ID          uint      `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewReportResponse converts a generated report model into a DTO.
func NewReportResponse(model models.GeneratedReport) ReportResponse {
	return ReportResponse{
		ID:          model.ID,
		StudentID:   model.StudentID,
		StudentName: model.StudentName,
		Content:     model.Content,
		CreatedAt:   model.CreatedAt,
	}
}

// NewReportResponseSlice converts a slice of models into DTOs.
func NewReportResponseSlice(reports []models.GeneratedReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, NewReportResponse(report))
	}
	return out
}
