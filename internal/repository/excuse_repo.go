package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ExcuseFilter scopes excuse listing queries.
type ExcuseFilter struct {
	StudentID string
	Date      string
	Status    models.ExcuseStatus
}

// ExcuseRepository handles persistence for excuse requests.
type ExcuseRepository interface {
	Create(ctx context.Context, request *models.ExcuseRequest) error
	GetByID(ctx context.Context, schoolID, id uint) (models.ExcuseRequest, error)
	List(ctx context.Context, schoolID uint, filter ExcuseFilter) ([]models.ExcuseRequest, error)
	Update(ctx context.Context, request *models.ExcuseRequest) error
}

type excuseRepository struct {
	db *gorm.DB
}

// NewExcuseRepository constructs a GORM-backed excuse repository.
func NewExcuseRepository(db *gorm.DB) ExcuseRepository {
	return &excuseRepository{db: db}
}

func (r *excuseRepository) Create(ctx context.Context, request *models.ExcuseRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *excuseRepository) GetByID(ctx context.Context, schoolID, id uint) (models.ExcuseRequest, error) {
	var request models.ExcuseRequest
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&request, id).Error; err != nil {
		return models.ExcuseRequest{}, err
	}

	return request, nil
}

func (r *excuseRepository) List(ctx context.Context, schoolID uint, filter ExcuseFilter) ([]models.ExcuseRequest, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)

	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var requests []models.ExcuseRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *excuseRepository) Update(ctx context.Context, request *models.ExcuseRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}
