package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

// ErrSchoolNotFound is returned when the requested tenant does not exist.
var ErrSchoolNotFound = errors.New("school not found")

// SchoolService exposes the tenant directory used for school selection.
type SchoolService interface {
	Get(ctx context.Context, id uint) (models.School, error)
	ListActive(ctx context.Context) ([]models.School, error)
}

type schoolService struct {
	schools repository.SchoolRepository
	logger  zerolog.Logger
}

// NewSchoolService constructs a school directory service.
func NewSchoolService(schools repository.SchoolRepository, logger zerolog.Logger) SchoolService {
	return &schoolService{
		schools: schools,
		logger:  logger.With().Str("component", "school_service").Logger(),
	}
}

func (s *schoolService) Get(ctx context.Context, id uint) (models.School, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.School{}, ErrSchoolNotFound
		}
		return models.School{}, err
	}

	return school, nil
}

func (s *schoolService) ListActive(ctx context.Context) ([]models.School, error) {
	return s.schools.ListActive(ctx)
}
