package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrExitNotFound indicates the exit permission does not exist in the school scope.
	ErrExitNotFound = errors.New("exit permission not found")
	// ErrExitExpired indicates the validity window has passed.
	ErrExitExpired = errors.New("exit permission expired")
	// ErrExitCompleted indicates the pickup already happened.
	ErrExitCompleted = errors.New("exit permission already completed")
)

// ExitService issues and completes one-hour pickup permissions.
type ExitService interface {
	Issue(ctx context.Context, schoolID uint, payload dto.ExitPermissionCreateRequest) (dto.ExitPermissionResponse, error)
	Complete(ctx context.Context, schoolID, id uint) (dto.ExitPermissionResponse, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]dto.ExitPermissionResponse, error)
}

type exitService struct {
	permissions repository.ExitPermissionRepository
	validate    *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewExitService constructs the exit permission service.
func NewExitService(permissions repository.ExitPermissionRepository, validate *validator.Validate, logger zerolog.Logger) ExitService {
	return &exitService{
		permissions: permissions,
		validate:    validate,
		logger:      logger.With().Str("component", "exit_service").Logger(),
		now:         time.Now,
	}
}

func (s *exitService) Issue(ctx context.Context, schoolID uint, payload dto.ExitPermissionCreateRequest) (dto.ExitPermissionResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ExitPermissionResponse{}, err
	}

	permission := models.ExitPermission{
		SchoolID:    schoolID,
		StudentID:   payload.StudentID,
		StudentName: payload.StudentName,
		Status:      models.ExitStatusPendingPickup,
	}

	if err := s.permissions.Create(ctx, &permission); err != nil {
		return dto.ExitPermissionResponse{}, err
	}

	return dto.NewExitPermissionResponse(permission, s.now()), nil
}

// Complete marks the pickup as done. Completion after the one-hour window is
// rejected; the guard answers "can this student leave" so an expired
// permission must read the same as no permission at all.
func (s *exitService) Complete(ctx context.Context, schoolID, id uint) (dto.ExitPermissionResponse, error) {
	permission, err := s.permissions.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ExitPermissionResponse{}, ErrExitNotFound
	}
	if permission.Status == models.ExitStatusCompleted {
		return dto.ExitPermissionResponse{}, ErrExitCompleted
	}

	now := s.now()
	if !permission.Active(now) {
		return dto.ExitPermissionResponse{}, ErrExitExpired
	}

	permission.Status = models.ExitStatusCompleted
	permission.CompletedAt = &now
	if err := s.permissions.Update(ctx, &permission); err != nil {
		return dto.ExitPermissionResponse{}, err
	}

	return dto.NewExitPermissionResponse(permission, now), nil
}

func (s *exitService) List(ctx context.Context, schoolID uint, studentID string) ([]dto.ExitPermissionResponse, error) {
	permissions, err := s.permissions.List(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewExitPermissionResponseSlice(permissions, s.now()), nil
}
