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

var (
	// ErrExcuseNotFound indicates the excuse request does not exist in the school scope.
	ErrExcuseNotFound = errors.New("excuse request not found")
	// ErrExcuseAlreadyDecided indicates the request was already approved or rejected.
	ErrExcuseAlreadyDecided = errors.New("excuse request already decided")
)

// ExcuseService manages parent-filed excuse requests and staff review.
type ExcuseService interface {
	Submit(ctx context.Context, schoolID uint, payload dto.ExcuseCreateRequest) (dto.ExcuseResponse, error)
	Review(ctx context.Context, schoolID, id uint, payload dto.ExcuseReviewRequest) (dto.ExcuseResponse, error)
	List(ctx context.Context, schoolID uint, filter repository.ExcuseFilter) ([]dto.ExcuseResponse, error)
}

type excuseService struct {
	excuses  repository.ExcuseRepository
	notifier NotificationService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewExcuseService constructs the excuse service. notifier may be nil; review
// decisions then go unannounced.
func NewExcuseService(excuses repository.ExcuseRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) ExcuseService {
	return &excuseService{
		excuses:  excuses,
		notifier: notifier,
		validate: validate,
		logger:   logger.With().Str("component", "excuse_service").Logger(),
	}
}

func (s *excuseService) Submit(ctx context.Context, schoolID uint, payload dto.ExcuseCreateRequest) (dto.ExcuseResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ExcuseResponse{}, err
	}

	request := models.ExcuseRequest{
		SchoolID:      schoolID,
		StudentID:     payload.StudentID,
		StudentName:   payload.StudentName,
		Date:          payload.Date,
		Status:        models.ExcuseStatusPending,
		Reason:        payload.Reason,
		AttachmentURL: payload.AttachmentURL,
	}

	if err := s.excuses.Create(ctx, &request); err != nil {
		return dto.ExcuseResponse{}, err
	}

	return dto.NewExcuseResponse(request), nil
}

func (s *excuseService) Review(ctx context.Context, schoolID, id uint, payload dto.ExcuseReviewRequest) (dto.ExcuseResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ExcuseResponse{}, err
	}

	request, err := s.excuses.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ExcuseResponse{}, ErrExcuseNotFound
	}

	if request.Status != models.ExcuseStatusPending {
		return dto.ExcuseResponse{}, ErrExcuseAlreadyDecided
	}

	request.Status = models.ExcuseStatus(payload.Status)
	if err := s.excuses.Update(ctx, &request); err != nil {
		return dto.ExcuseResponse{}, err
	}

	if s.notifier != nil {
		_, err := s.notifier.Publish(ctx, schoolID, dto.NotificationCreateRequest{
			UserID:  request.StudentID,
			Type:    "excuse_decided",
			Message: fmt.Sprintf("excuse request for %s was %s", request.Date, request.Status),
			Metadata: map[string]interface{}{
				"excuse_id": request.ID,
				"date":      request.Date,
			},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish excuse decision notification")
		}
	}

	return dto.NewExcuseResponse(request), nil
}

func (s *excuseService) List(ctx context.Context, schoolID uint, filter repository.ExcuseFilter) ([]dto.ExcuseResponse, error) {
	requests, err := s.excuses.List(ctx, schoolID, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewExcuseResponseSlice(requests), nil
}
