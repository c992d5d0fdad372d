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
	// ErrReferralNotFound indicates the referral does not exist in the school scope.
	ErrReferralNotFound = errors.New("referral not found")
	// ErrReferralTransition indicates the requested status change is not a legal move.
	ErrReferralTransition = errors.New("illegal referral status transition")
)

// ReferralService runs the counseling referral workflow: a deputy opens a
// case, the counselor accepts and works it, hands it back with an outcome,
// and the deputy closes it with a final decision.
type ReferralService interface {
	Open(ctx context.Context, schoolID uint, payload dto.ReferralCreateRequest) (dto.ReferralResponse, error)
	Accept(ctx context.Context, schoolID, id uint) (dto.ReferralResponse, error)
	Return(ctx context.Context, schoolID, id uint, payload dto.ReferralReturnRequest) (dto.ReferralResponse, error)
	Resolve(ctx context.Context, schoolID, id uint, payload dto.ReferralResolveRequest) (dto.ReferralResponse, error)
	List(ctx context.Context, schoolID uint, status models.ReferralStatus) ([]dto.ReferralResponse, error)
}

type referralService struct {
	referrals repository.ReferralRepository
	notifier  NotificationService
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewReferralService constructs the referral service. notifier may be nil.
func NewReferralService(referrals repository.ReferralRepository, notifier NotificationService, validate *validator.Validate, logger zerolog.Logger) ReferralService {
	return &referralService{
		referrals: referrals,
		notifier:  notifier,
		validate:  validate,
		logger:    logger.With().Str("component", "referral_service").Logger(),
	}
}

func (s *referralService) Open(ctx context.Context, schoolID uint, payload dto.ReferralCreateRequest) (dto.ReferralResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ReferralResponse{}, err
	}

	referral := models.Referral{
		SchoolID:     schoolID,
		StudentID:    payload.StudentID,
		StudentName:  payload.StudentName,
		ReferralDate: payload.ReferralDate,
		Reason:       payload.Reason,
		Status:       models.ReferralStatusPending,
	}

	if err := s.referrals.Create(ctx, &referral); err != nil {
		return dto.ReferralResponse{}, err
	}

	s.notify(ctx, schoolID, referral, "referral_opened", "a counseling referral was opened")

	return dto.NewReferralResponse(referral), nil
}

// Accept moves a pending referral into the counselor's queue.
func (s *referralService) Accept(ctx context.Context, schoolID, id uint) (dto.ReferralResponse, error) {
	referral, err := s.referrals.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ReferralResponse{}, ErrReferralNotFound
	}
	if !referral.CanTransition(models.ReferralStatusInProgress) {
		return dto.ReferralResponse{}, ErrReferralTransition
	}

	referral.Status = models.ReferralStatusInProgress
	if err := s.referrals.Update(ctx, &referral); err != nil {
		return dto.ReferralResponse{}, err
	}

	return dto.NewReferralResponse(referral), nil
}

// Return hands the case back to the deputy. The counselor must supply an
// outcome; the transition is rejected up front when the note is missing.
func (s *referralService) Return(ctx context.Context, schoolID, id uint, payload dto.ReferralReturnRequest) (dto.ReferralResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ReferralResponse{}, err
	}

	referral, err := s.referrals.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ReferralResponse{}, ErrReferralNotFound
	}
	if !referral.CanTransition(models.ReferralStatusReturnedToDeputy) {
		return dto.ReferralResponse{}, ErrReferralTransition
	}

	referral.Status = models.ReferralStatusReturnedToDeputy
	referral.Outcome = payload.Outcome
	if err := s.referrals.Update(ctx, &referral); err != nil {
		return dto.ReferralResponse{}, err
	}

	s.notify(ctx, schoolID, referral, "referral_returned", "a referral was returned with an outcome")

	return dto.NewReferralResponse(referral), nil
}

// Resolve closes the case with the deputy's final decision. Closing is legal
// both from returned_to_deputy and directly from in_progress, so the deputy
// does not have to wait for the counselor's hand-back.
func (s *referralService) Resolve(ctx context.Context, schoolID, id uint, payload dto.ReferralResolveRequest) (dto.ReferralResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ReferralResponse{}, err
	}

	referral, err := s.referrals.GetByID(ctx, schoolID, id)
	if err != nil {
		return dto.ReferralResponse{}, ErrReferralNotFound
	}
	if !referral.CanTransition(models.ReferralStatusResolved) {
		return dto.ReferralResponse{}, ErrReferralTransition
	}

	referral.Status = models.ReferralStatusResolved
	referral.FinalDecision = payload.FinalDecision
	if err := s.referrals.Update(ctx, &referral); err != nil {
		return dto.ReferralResponse{}, err
	}

	s.notify(ctx, schoolID, referral, "referral_resolved", "a referral was closed")

	return dto.NewReferralResponse(referral), nil
}

func (s *referralService) List(ctx context.Context, schoolID uint, status models.ReferralStatus) ([]dto.ReferralResponse, error) {
	referrals, err := s.referrals.List(ctx, schoolID, status)
	if err != nil {
		return nil, err
	}

	return dto.NewReferralResponseSlice(referrals), nil
}

func (s *referralService) notify(ctx context.Context, schoolID uint, referral models.Referral, eventType, message string) {
	if s.notifier == nil {
		return
	}

	_, err := s.notifier.Publish(ctx, schoolID, dto.NotificationCreateRequest{
		UserID:  referral.StudentID,
		Type:    eventType,
		Message: message,
		Metadata: map[string]interface{}{
			"referral_id": referral.ID,
			"status":      string(referral.Status),
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish referral notification")
	}
}
