package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// AppointmentRepository handles persistence for slots and bookings.
type AppointmentRepository interface {
	CreateSlot(ctx context.Context, slot *models.AppointmentSlot) error
	GetSlot(ctx context.Context, schoolID, id uint) (models.AppointmentSlot, error)
	ListSlots(ctx context.Context, schoolID uint, date string) ([]models.AppointmentSlot, error)
	CountBookings(ctx context.Context, slotID uint) (int64, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	GetAppointment(ctx context.Context, schoolID, id uint) (models.Appointment, error)
	ListAppointments(ctx context.Context, schoolID uint, parentCivilID string) ([]models.Appointment, error)
	CountActivePending(ctx context.Context, schoolID uint, parentCivilID string) (int64, error)
	Update(ctx context.Context, appointment *models.Appointment) error
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository constructs a GORM-backed appointment repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) CreateSlot(ctx context.Context, slot *models.AppointmentSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *appointmentRepository) GetSlot(ctx context.Context, schoolID, id uint) (models.AppointmentSlot, error) {
	var slot models.AppointmentSlot
	if err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		First(&slot, id).Error; err != nil {
		return models.AppointmentSlot{}, err
	}

	return slot, nil
}

func (r *appointmentRepository) ListSlots(ctx context.Context, schoolID uint, date string) ([]models.AppointmentSlot, error) {
	query := r.db.WithContext(ctx).Where("school_id = ?", schoolID)
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var slots []models.AppointmentSlot
	if err := query.Order("date ASC, start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *appointmentRepository) CountBookings(ctx context.Context, slotID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("slot_id = ? AND status <> ?", slotID, models.AppointmentStatusCancelled).
		Count(&count).Error

	return count, err
}

func (r *appointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) GetAppointment(ctx context.Context, schoolID, id uint) (models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("school_id = ?", schoolID).
		First(&appointment, id).Error; err != nil {
		return models.Appointment{}, err
	}

	return appointment, nil
}

func (r *appointmentRepository) ListAppointments(ctx context.Context, schoolID uint, parentCivilID string) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).Preload("Slot").Where("school_id = ?", schoolID)
	if parentCivilID != "" {
		query = query.Where("parent_civil_id = ?", parentCivilID)
	}

	var appointments []models.Appointment
	if err := query.Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}

	return appointments, nil
}

func (r *appointmentRepository) CountActivePending(ctx context.Context, schoolID uint, parentCivilID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("school_id = ? AND parent_civil_id = ? AND status = ?", schoolID, parentCivilID, models.AppointmentStatusPending).
		Count(&count).Error

	return count, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}
