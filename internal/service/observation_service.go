package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrObservationNotFound indicates the observation does not exist in the school scope.
	ErrObservationNotFound = errors.New("observation not found")
	// ErrObservationAlreadyViewed indicates the parent already acknowledged the note.
	ErrObservationAlreadyViewed = errors.New("observation already acknowledged")
)

// ObservationService manages staff observations and parent acknowledgement.
type ObservationService interface {
	Create(ctx context.Context, schoolID uint, payload dto.ObservationCreateRequest) (dto.ObservationResponse, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]dto.ObservationResponse, error)
	Acknowledge(ctx context.Context, schoolID, id uint, payload dto.ObservationAcknowledgeRequest) (dto.ObservationResponse, error)
	Delete(ctx context.Context, schoolID, id uint) error
}

type observationService struct {
	observations repository.ObservationRepository
	notifier     NotificationService
	validate     *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
}

// NewObservationService constructs the observation service. Content and
// feedback are sanitized with a strict policy since both render in the
// parent portal.
func NewObservationService(observations repository.ObservationRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) ObservationService {
	return &observationService{
		observations: observations,
		notifier:     notifier,
		validate:     validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "observation_service").Logger(),
	}
}

func (s *observationService) Create(ctx context.Context, schoolID uint, payload dto.ObservationCreateRequest) (dto.ObservationResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ObservationResponse{}, err
	}

	observation := models.StudentObservation{
		SchoolID:  schoolID,
		StudentID: payload.StudentID,
		Date:      payload.Date,
		Type:      models.ObservationType(payload.Type),
		Content:   strings.TrimSpace(s.sanitizer.Sanitize(payload.Content)),
		StaffName: payload.StaffName,
	}

	if err := s.observations.Create(ctx, &observation); err != nil {
		return dto.ObservationResponse{}, err
	}

	if s.notifier != nil {
		_, err := s.notifier.Publish(ctx, schoolID, dto.NotificationCreateRequest{
			UserID:  observation.StudentID,
			Type:    "observation_created",
			Message: "a new observation was recorded for your child",
			Metadata: map[string]interface{}{
				"observation_id":   observation.ID,
				"observation_type": string(observation.Type),
			},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish observation notification")
		}
	}

	return dto.NewObservationResponse(observation), nil
}

func (s *observationService) List(ctx context.Context, schoolID uint, studentID string) ([]dto.ObservationResponse, error) {
	observations, err := s.observations.List(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewObservationResponseSlice(observations), nil
}

// Acknowledge marks the note as viewed by the parent. The flag is one-way;
// a second acknowledgement is rejected rather than silently overwriting the
// original feedback.
func (s *observationService) Acknowledge(ctx context.Context, schoolID, id uint, payload dto.ObservationAcknowledgeRequest) (dto.ObservationResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ObservationResponse{}, err
	}

	observation, err := s.observations.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ObservationResponse{}, ErrObservationNotFound
	}
	if observation.ParentViewed {
		return dto.ObservationResponse{}, ErrObservationAlreadyViewed
	}

	observation.ParentViewed = true
	observation.ParentFeedback = strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback))
	if err := s.observations.Update(ctx, &observation); err != nil {
		return dto.ObservationResponse{}, err
	}

	return dto.NewObservationResponse(observation), nil
}

func (s *observationService) Delete(ctx context.Context, schoolID, id uint) error {
	if _, err := s.observations.GetByID(ctx, schoolID, id); err != nil {
		return ErrObservationNotFound
	}

	return s.observations.Delete(ctx, schoolID, id)
}
