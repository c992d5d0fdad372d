package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ReferralRepository handles persistence for counseling referrals.
type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	GetByID(ctx context.Context, schoolID, id uint) (models.Referral, error)
	List(ctx context.Context, schoolID uint, status models.ReferralStatus) ([]models.Referral, error)
	Update(ctx context.Context, referral *models.Referral) error
}

type referralRepository struct {
	db *gorm.DB
}

// NewReferralRepository constructs a GORM-backed referral repository.
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *models.Referral) error {
	return r.db.WithContext(ctx).Create(referral).Error
}

func (r *referralRepository) GetByID(ctx context.Context, schoolID, id uint) (models.Referral, error) {
	var referral models.Referral
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&referral, id).Error; err != nil {
		return models.Referral{}, err
	}

	return referral, nil
}

func (r *referralRepository) List(ctx context.Context, schoolID uint, status models.ReferralStatus) ([]models.Referral, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var referrals []models.Referral
	if err := query.Order("created_at DESC").Find(&referrals).Error; err != nil {
		return nil, err
	}

	return referrals, nil
}

func (r *referralRepository) Update(ctx context.Context, referral *models.Referral) error {
	return r.db.WithContext(ctx).Save(referral).Error
}
