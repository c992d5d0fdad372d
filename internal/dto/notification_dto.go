package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// NotificationCreateRequest publishes a notification to a user scope.
type NotificationCreateRequest struct {
	UserID   string                 `json:"user_id" validate:"required,max=64"`
	Type     string                 `json:"type" validate:"required,max=64"`
	Message  string                 `json:"message" validate:"required,min=1,max=4000"`
	Metadata map[string]interface{} `json:"metadata" validate:"omitempty"`
}

// NotificationResponse is the serialized representation of a notification.
type NotificationResponse struct {
	ID        uint                   `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewNotificationResponse converts a model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Message:   model.Message,
		Metadata:  model.Metadata,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice of models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, NewNotificationResponse(notification))
	}
	return out
}
