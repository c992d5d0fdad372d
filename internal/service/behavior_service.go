package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

// ErrBehaviorNotFound indicates the behavior record does not exist in the school scope.
var ErrBehaviorNotFound = errors.New("behavior record not found")

// BehaviorService manages the violation log for students.
type BehaviorService interface {
	Record(ctx context.Context, schoolID uint, payload dto.BehaviorCreateRequest) (dto.BehaviorResponse, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]dto.BehaviorResponse, error)
	Delete(ctx context.Context, schoolID, id uint) error
}

type behaviorService struct {
	behaviors repository.BehaviorRepository
	notifier  NotificationService
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewBehaviorService constructs the behavior service. notifier may be nil.
func NewBehaviorService(behaviors repository.BehaviorRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) BehaviorService {
	return &behaviorService{
		behaviors: behaviors,
		notifier:  notifier,
		validate:  validate,
		logger:    logger.With().Str("component", "behavior_service").Logger(),
	}
}

func (s *behaviorService) Record(ctx context.Context, schoolID uint, payload dto.BehaviorCreateRequest) (dto.BehaviorResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.BehaviorResponse{}, err
	}

	record := models.BehaviorRecord{
		SchoolID:        schoolID,
		StudentID:       payload.StudentID,
		StudentName:     payload.StudentName,
		Date:            payload.Date,
		ViolationName:   payload.ViolationName,
		ViolationDegree: payload.ViolationDegree,
		ActionTaken:     payload.ActionTaken,
		Points:          payload.Points,
	}

	if err := s.behaviors.Create(ctx, &record); err != nil {
		return dto.BehaviorResponse{}, err
	}

	if s.notifier != nil {
		_, err := s.notifier.Publish(ctx, schoolID, dto.NotificationCreateRequest{
			UserID:  record.StudentID,
			Type:    "behavior_recorded",
			Message: fmt.Sprintf("violation %q recorded on %s", record.ViolationName, record.Date),
			Metadata: map[string]interface{}{
				"behavior_id": record.ID,
				"points":      record.Points,
			},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish behavior notification")
		}
	}

	return dto.NewBehaviorResponse(record), nil
}

func (s *behaviorService) List(ctx context.Context, schoolID uint, studentID string) ([]dto.BehaviorResponse, error) {
	records, err := s.behaviors.List(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewBehaviorResponseSlice(records), nil
}

// Delete removes a violation permanently. Behavior rows are one of the few
// entities with hard deletion, used when a record was filed in error.
func (s *behaviorService) Delete(ctx context.Context, schoolID, id uint) error {
	if _, err := s.behaviors.GetByID(ctx, schoolID, id); err != nil {
		return ErrBehaviorNotFound
	}

	return s.behaviors.Delete(ctx, schoolID, id)
}
