package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ExitPermissionRepository handles persistence for exit permissions.
type ExitPermissionRepository interface {
	Create(ctx context.Context, permission *models.ExitPermission) error
	GetByID(ctx context.Context, schoolID, id uint) (models.ExitPermission, error)
	List(ctx context.Context, schoolID uint, studentID string) ([]models.ExitPermission, error)
	Update(ctx context.Context, permission *models.ExitPermission) error
}

type exitPermissionRepository struct {
	db *gorm.DB
}

// NewExitPermissionRepository constructs a GORM-backed exit permission repository.
func NewExitPermissionRepository(db *gorm.DB) ExitPermissionRepository {
	return &exitPermissionRepository{db: db}
}

func (r *exitPermissionRepository) Create(ctx context.Context, permission *models.ExitPermission) error {
	return r.db.WithContext(ctx).Create(permission).Error
}

func (r *exitPermissionRepository) GetByID(ctx context.Context, schoolID, id uint) (models.ExitPermission, error) {
	var permission models.ExitPermission
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&permission, id).Error; err != nil {
		return models.ExitPermission{}, err
	}

	return permission, nil
}

func (r *exitPermissionRepository) List(ctx context.Context, schoolID uint, studentID string) ([]models.ExitPermission, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var permissions []models.ExitPermission
	if err := query.Order("created_at DESC").Find(&permissions).Error; err != nil {
		return nil, err
	}

	return permissions, nil
}

func (r *exitPermissionRepository) Update(ctx context.Context, permission *models.ExitPermission) error {
	return r.db.WithContext(ctx).Save(permission).Error
}
