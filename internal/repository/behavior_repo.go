package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// BehaviorRepository handles persistence for behavior records. Behavior rows
// are among the few entities that support hard deletion.
type BehaviorRepository interface {
	Create(ctx context.Context, record *models.BehaviorRecord) error
	GetByID(ctx context.Context, schoolID, id uint) (models.BehaviorRecord, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]models.BehaviorRecord, error)
	Delete(ctx context.Context, schoolID, id uint) error
}

type behaviorRepository struct {
	db *gorm.DB
}

// NewBehaviorRepository constructs a GORM-backed behavior repository.
func NewBehaviorRepository(db *gorm.DB) BehaviorRepository {
	return &behaviorRepository{db: db}
}

func (r *behaviorRepository) Create(ctx context.Context, record *models.BehaviorRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *behaviorRepository) GetByID(ctx context.Context, schoolID, id uint) (models.BehaviorRecord, error) {
	var record models.BehaviorRecord
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&record, id).Error; err != nil {
		return models.BehaviorRecord{}, err
	}

	return record, nil
}

func (r *behaviorRepository) List(ctx context.Context, schoolID uint, studentID string) ([]models.BehaviorRecord, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var records []models.BehaviorRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *behaviorRepository) Delete(ctx context.Context, schoolID, id uint) error {
	return r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Delete(&models.BehaviorRecord{}, id).Error
}
