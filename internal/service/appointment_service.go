package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrSlotNotFound indicates the slot does not exist in the school scope.
	ErrSlotNotFound = errors.New("appointment slot not found")
	// ErrSlotFull indicates the slot reached capacity.
	ErrSlotFull = errors.New("appointment slot is full")
	// ErrAppointmentNotFound indicates the booking does not exist in the school scope.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrActiveAppointmentExists indicates the parent already holds a pending booking.
	ErrActiveAppointmentExists = errors.New("parent already has a pending appointment")
	// ErrAppointmentClosed indicates the booking was already completed or cancelled.
	ErrAppointmentClosed = errors.New("appointment already closed")
)

// AppointmentService publishes slots and books parent appointments.
type AppointmentService interface {
	PublishSlot(ctx context.Context, schoolID uint, payload dto.SlotCreateRequest) (dto.SlotResponse, error)
	ListSlots(ctx context.Context, schoolID uint, date string) ([]dto.SlotResponse, error)
	Book(ctx context.Context, schoolID uint, payload dto.AppointmentBookRequest) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, schoolID, id uint) (dto.AppointmentResponse, error)
	Complete(ctx context.Context, schoolID, id uint) (dto.AppointmentResponse, error)
	List(ctx context.Context, schoolID uint, parentCivilID string) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	notifier     NotificationService
	validate     *validator.Validate
	logger       zerolog.Logger
}

// NewAppointmentService constructs the appointment service. notifier may be nil.
func NewAppointmentService(appointments repository.AppointmentRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		notifier:     notifier,
		validate:     validate,
		logger:       logger.With().Str("component", "appointment_service").Logger(),
	}
}

func (s *appointmentService) PublishSlot(ctx context.Context, schoolID uint, payload dto.SlotCreateRequest) (dto.SlotResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.SlotResponse{}, err
	}

	capacity := payload.Capacity
	if capacity <= 0 {
		capacity = 1
	}

	slot := models.AppointmentSlot{
		SchoolID:  schoolID,
		Date:      payload.Date,
		StartTime: payload.StartTime,
		Capacity:  capacity,
	}

	if err := s.appointments.CreateSlot(ctx, &slot); err != nil {
		return dto.SlotResponse{}, err
	}

	return dto.SlotResponse{
		ID:        slot.ID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		Capacity:  slot.Capacity,
	}, nil
}

func (s *appointmentService) ListSlots(ctx context.Context, schoolID uint, date string) ([]dto.SlotResponse, error) {
	slots, err := s.appointments.ListSlots(ctx, schoolID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		booked, err := s.appointments.CountBookings(ctx, slot.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.SlotResponse{
			ID:        slot.ID,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			Capacity:  slot.Capacity,
			Booked:    int(booked),
		})
	}

	return responses, nil
}

// Book reserves a slot for the parent. A parent may hold at most one pending
// booking at a time; cancelled and completed bookings do not count against
// that limit.
func (s *appointmentService) Book(ctx context.Context, schoolID uint, payload dto.AppointmentBookRequest) (dto.AppointmentResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.AppointmentResponse{}, err
	}

	pending, err := s.appointments.CountActivePending(ctx, schoolID, payload.ParentCivilID)
	if err != nil {
		return dto.AppointmentResponse{}, err
	}
	if pending > 0 {
		return dto.AppointmentResponse{}, ErrActiveAppointmentExists
	}

	slot, err := s.appointments.GetSlot(ctx, schoolID, payload.SlotID)
	if err != nil {
		return dto.AppointmentResponse{}, ErrSlotNotFound
	}

	booked, err := s.appointments.CountBookings(ctx, slot.ID)
	if err != nil {
		return dto.AppointmentResponse{}, err
	}
	if booked >= int64(slot.Capacity) {
		return dto.AppointmentResponse{}, ErrSlotFull
	}

	appointment := models.Appointment{
		SchoolID:      schoolID,
		SlotID:        slot.ID,
		Slot:          slot,
		StudentID:     payload.StudentID,
		ParentCivilID: payload.ParentCivilID,
		Status:        models.AppointmentStatusPending,
	}

	if err := s.appointments.CreateAppointment(ctx, &appointment); err != nil {
		return dto.AppointmentResponse{}, err
	}

	if s.notifier != nil {
		_, err := s.notifier.Publish(ctx, schoolID, dto.NotificationCreateRequest{
			UserID:  payload.ParentCivilID,
			Type:    "appointment_booked",
			Message: "your appointment was booked",
			Metadata: map[string]interface{}{
				"appointment_id": appointment.ID,
				"date":           slot.Date,
				"start_time":     slot.StartTime,
			},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish appointment notification")
		}
	}

	return dto.NewAppointmentResponse(appointment), nil
}

func (s *appointmentService) Cancel(ctx context.Context, schoolID, id uint) (dto.AppointmentResponse, error) {
	return s.close(ctx, schoolID, id, models.AppointmentStatusCancelled)
}

func (s *appointmentService) Complete(ctx context.Context, schoolID, id uint) (dto.AppointmentResponse, error) {
	return s.close(ctx, schoolID, id, models.AppointmentStatusCompleted)
}

func (s *appointmentService) close(ctx context.Context, schoolID, id uint, to models.AppointmentStatus) (dto.AppointmentResponse, error) {
	appointment, err := s.appointments.GetAppointment(ctx, schoolID, id)
	if err != nil {
		return dto.AppointmentResponse{}, ErrAppointmentNotFound
	}
	if appointment.Status != models.AppointmentStatusPending {
		return dto.AppointmentResponse{}, ErrAppointmentClosed
	}

	appointment.Status = to
	if err := s.appointments.Update(ctx, &appointment); err != nil {
		return dto.AppointmentResponse{}, err
	}

	return dto.NewAppointmentResponse(appointment), nil
}

func (s *appointmentService) List(ctx context.Context, schoolID uint, parentCivilID string) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointments.ListAppointments(ctx, schoolID, parentCivilID)
	if err != nil {
		return nil, err
	}

	return dto.NewAppointmentResponseSlice(appointments), nil
}
