package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// BehaviorCreateRequest logs a violation against a student.
type BehaviorCreateRequest struct {
	StudentID       string `json:"student_id" validate:"required,max=64"`
	StudentName     string `json:"student_name" validate:"required,max=255"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	ViolationName   string `json:"violation_name" validate:"required,max=255"`
	ViolationDegree string `json:"violation_degree" validate:"omitempty,max=64"`
	ActionTaken     string `json:"action_taken" validate:"omitempty,max=2000"`
	Points          int    `json:"points" validate:"omitempty,gte=-100,lte=0"`
}

// BehaviorResponse serializes a behavior record.
type BehaviorResponse struct {
	ID              uint      `json:"id"`
	StudentID       string    `json:"student_id"`
	StudentName     string    `json:"student_name"`
	Date            string    `json:"date"`
	ViolationName   string    `json:"violation_name"`
	ViolationDegree string    `json:"violation_degree"`
	ActionTaken     string    `json:"action_taken"`
	Points          int       `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBehaviorResponse converts a behavior model into a DTO.
func NewBehaviorResponse(model models.BehaviorRecord) BehaviorResponse {
	return BehaviorResponse{
		ID:              model.ID,
		StudentID:       model.StudentID,
		StudentName:     model.StudentName,
		Date:            model.Date,
		ViolationName:   model.ViolationName,
		ViolationDegree: model.ViolationDegree,
		ActionTaken:     model.ActionTaken,
		Points:          model.Points,
		CreatedAt:       model.CreatedAt,
	}
}

// NewBehaviorResponseSlice converts a slice of models into DTOs.
func NewBehaviorResponseSlice(records []models.BehaviorRecord) []BehaviorResponse {
	out := make([]BehaviorResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewBehaviorResponse(record))
	}
	return out
}

// ObservationCreateRequest records a staff observation about a student.
type ObservationCreateRequest struct {
	StudentID string `json:"student_id" validate:"required,max=64"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Type      string `json:"type" validate:"required,oneof=positive negative neutral"`
	Content   string `json:"content" validate:"required,min=3"`
	StaffName string `json:"staff_name" validate:"required,max=255"`
}

// ObservationAcknowledgeRequest is the parent's one-way acknowledgement.
type ObservationAcknowledgeRequest struct {
	Feedback string `json:"feedback" validate:"omitempty,max=2000"`
}

// ObservationResponse serializes a student observation.
type ObservationResponse struct {
	ID             uint      `json:"id"`
	StudentID      string    `json:"student_id"`
	Date           string    `json:"date"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	StaffName      string    `json:"staff_name"`
	ParentViewed   bool      `json:"parent_viewed"`
	ParentFeedback string    `json:"parent_feedback,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewObservationResponse converts an observation model into a DTO.
func NewObservationResponse(model models.StudentObservation) ObservationResponse {
	return ObservationResponse{
		ID:             model.ID,
		StudentID:      model.StudentID,
		Date:           model.Date,
		Type:           string(model.Type),
		Content:        model.Content,
		StaffName:      model.StaffName,
		ParentViewed:   model.ParentViewed,
		ParentFeedback: model.ParentFeedback,
		CreatedAt:      model.CreatedAt,
	}
}

// NewObservationResponseSlice converts a slice of models into DTOs.
func NewObservationResponseSlice(observations []models.StudentObservation) []ObservationResponse {
	out := make([]ObservationResponse, 0, len(observations))
	for _, observation := range observations {
		out = append(out, NewObservationResponse(observation))
	}
	return out
}
