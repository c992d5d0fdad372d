package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// FollowUpRepository handles persistence for absence follow-up cases.
type FollowUpRepository interface {
	Create(ctx context.Context, followUp *models.AbsenceFollowUp) error
	GetByID(ctx context.Context, schoolID, id uint) (models.AbsenceFollowUp, error)
	FindActive(ctx context.Context, schoolID uint, studentID string) (*models.AbsenceFollowUp, error)
	List(ctx context.Context, schoolID uint, status models.FollowUpStatus) ([]models.AbsenceFollowUp, error)
	Update(ctx context.Context, followUp *models.AbsenceFollowUp) error
}

type followUpRepository struct {
	db *gorm.DB
}

// NewFollowUpRepository constructs a GORM-backed follow-up repository.
func NewFollowUpRepository(db *gorm.DB) FollowUpRepository {
	return &followUpRepository{db: db}
}

func (r *followUpRepository) Create(ctx context.Context, followUp *models.AbsenceFollowUp) error {
	return r.db.WithContext(ctx).Create(followUp).Error
}

func (r *followUpRepository) GetByID(ctx context.Context, schoolID, id uint) (models.AbsenceFollowUp, error) {
	var followUp models.AbsenceFollowUp
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&followUp, id).Error; err != nil {
		return models.AbsenceFollowUp{}, err
	}

	return followUp, nil
}

// FindActive returns the student's open or letter_sent case, or nil when the
// student has no unresolved follow-up.
func (r *followUpRepository) FindActive(ctx context.Context, schoolID uint, studentID string) (*models.AbsenceFollowUp, error) {
	var followUp models.AbsenceFollowUp
	err := r.db.WithContext(ctx).
		Where("school_id = ? AND student_id = ? AND status <> ?", schoolID, studentID, models.FollowUpStatusResolved).
		Order("created_at DESC").
		First(&followUp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &followUp, nil
}

func (r *followUpRepository) List(ctx context.Context, schoolID uint, status models.FollowUpStatus) ([]models.AbsenceFollowUp, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var followUps []models.AbsenceFollowUp
	if err := query.Order("created_at DESC").Find(&followUps).Error; err != nil {
		return nil, err
	}

	return followUps, nil
}

func (r *followUpRepository) Update(ctx context.Context, followUp *models.AbsenceFollowUp) error {
	return r.db.WithContext(ctx).Save(followUp).Error
}
