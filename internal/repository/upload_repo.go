package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// AttachmentRepository persists metadata about uploaded attachments.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	ListBySchool(ctx context.Context, schoolID uint) ([]models.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository constructs a repository for attachment records.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) ListBySchool(ctx context.Context, schoolID uint) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}
