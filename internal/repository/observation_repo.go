package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ObservationRepository handles persistence for student observations.
type ObservationRepository interface {
	Create(ctx context.Context, observation *models.StudentObservation) error
	GetByID(ctx context.Context, schoolID, id uint) (models.StudentObservation, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]models.StudentObservation, error)
	Update(ctx context.Context, observation *models.StudentObservation) error
	Delete(ctx context.Context, schoolID, id uint) error
}

type observationRepository struct {
	db *gorm.DB
}

// NewObservationRepository constructs a GORM-backed observation repository.
func NewObservationRepository(db *gorm.DB) ObservationRepository {
	return &observationRepository{db: db}
}

func (r *observationRepository) Create(ctx context.Context, observation *models.StudentObservation) error {
	return r.db.WithContext(ctx).Create(observation).Error
}

func (r *observationRepository) GetByID(ctx context.Context, schoolID, id uint) (models.StudentObservation, error) {
	var observation models.StudentObservation
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&observation, id).Error; err != nil {
		return models.StudentObservation{}, err
	}

	return observation, nil
}

func (r *observationRepository) List(ctx context.Context, schoolID uint, studentID string) ([]models.StudentObservation, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var observations []models.StudentObservation
	if err := query.Order("date DESC").Find(&observations).Error; err != nil {
		return nil, err
	}

	return observations, nil
}

func (r *observationRepository) Update(ctx context.Context, observation *models.StudentObservation) error {
	return r.db.WithContext(ctx).Save(observation).Error
}

func (r *observationRepository) Delete(ctx context.Context, schoolID, id uint) error {
	return r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Delete(&models.StudentObservation{}, id).Error
}
