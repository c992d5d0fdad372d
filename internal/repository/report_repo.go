package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ReportRepository stores generated narrative reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.GeneratedReport) error
	ListByStudent(ctx context.Context, schoolID uint, studentID string) ([]models.GeneratedReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs a GORM-backed report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.GeneratedReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListByStudent(ctx context.Context, schoolID uint, studentID string) ([]models.GeneratedReport, error) {
	var reports []models.GeneratedReport
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND student_id = ?", schoolID, studentID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}

	return reports, nil
}
