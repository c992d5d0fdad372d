package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
)

type fakeReferralRepo struct {
	referrals []models.Referral
}

func (f *fakeReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	referral.ID = uint(len(f.referrals) + 1)
	f.referrals = append(f.referrals, *referral)
	return nil
}

func (f *fakeReferralRepo) GetByID(ctx context.Context, schoolID, id uint) (models.Referral, error) {
	for _, referral := range f.referrals {
		if referral.ID == id {
			return referral, nil
		}
	}
	return models.Referral{}, gorm.ErrRecordNotFound
}

func (f *fakeReferralRepo) List(ctx context.Context, schoolID uint, status models.ReferralStatus) ([]models.Referral, error) {
	var matched []models.Referral
	for _, referral := range f.referrals {
		if status != "" && referral.Status != status {
			continue
		}
		matched = append(matched, referral)
	}
	return matched, nil
}

func (f *fakeReferralRepo) Update(ctx context.Context, referral *models.Referral) error {
	for i := range f.referrals {
		if f.referrals[i].ID == referral.ID {
			f.referrals[i] = *referral
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newReferralService(repo *fakeReferralRepo) ReferralService {
	return NewReferralService(repo, nil, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func openTestReferral(t *testing.T, svc ReferralService) dto.ReferralResponse {
	t.Helper()
	opened, err := svc.Open(context.Background(), 1, dto.ReferralCreateRequest{
		StudentID:    "S-1",
		StudentName:  "Huda",
		ReferralDate: "2024-05-01",
		Reason:       "repeated absence",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ReferralStatusPending), opened.Status)
	return opened
}

func TestReferralFullWorkflow(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})
	opened := openTestReferral(t, svc)

	accepted, err := svc.Accept(context.Background(), 1, opened.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.ReferralStatusInProgress), accepted.Status)

	returned, err := svc.Return(context.Background(), 1, opened.ID, dto.ReferralReturnRequest{Outcome: "counseling sessions held"})
	require.NoError(t, err)
	require.Equal(t, string(models.ReferralStatusReturnedToDeputy), returned.Status)
	require.Equal(t, "counseling sessions held", returned.Outcome)

	resolved, err := svc.Resolve(context.Background(), 1, opened.ID, dto.ReferralResolveRequest{FinalDecision: "case closed with parent meeting"})
	require.NoError(t, err)
	require.Equal(t, string(models.ReferralStatusResolved), resolved.Status)
}

func TestReferralDeputyClosesFromInProgress(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})
	opened := openTestReferral(t, svc)

	_, err := svc.Accept(context.Background(), 1, opened.ID)
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), 1, opened.ID, dto.ReferralResolveRequest{FinalDecision: "closed without hand-back"})
	require.NoError(t, err)
	require.Equal(t, string(models.ReferralStatusResolved), resolved.Status)
}

func TestReferralRejectsIllegalTransitions(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})
	opened := openTestReferral(t, svc)

	// cannot return or resolve a case nobody accepted
	_, err := svc.Return(context.Background(), 1, opened.ID, dto.ReferralReturnRequest{Outcome: "premature"})
	require.ErrorIs(t, err, ErrReferralTransition)

	_, err = svc.Resolve(context.Background(), 1, opened.ID, dto.ReferralResolveRequest{FinalDecision: "premature"})
	require.ErrorIs(t, err, ErrReferralTransition)

	_, err = svc.Accept(context.Background(), 1, opened.ID)
	require.NoError(t, err)

	// accepting twice is illegal
	_, err = svc.Accept(context.Background(), 1, opened.ID)
	require.ErrorIs(t, err, ErrReferralTransition)
}

func TestReferralResolvedIsTerminal(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})
	opened := openTestReferral(t, svc)

	_, err := svc.Accept(context.Background(), 1, opened.ID)
	require.NoError(t, err)
	_, err = svc.Resolve(context.Background(), 1, opened.ID, dto.ReferralResolveRequest{FinalDecision: "done"})
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), 1, opened.ID)
	require.ErrorIs(t, err, ErrReferralTransition)
	_, err = svc.Return(context.Background(), 1, opened.ID, dto.ReferralReturnRequest{Outcome: "too late"})
	require.ErrorIs(t, err, ErrReferralTransition)
}

func TestReferralReturnRequiresOutcome(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})
	opened := openTestReferral(t, svc)

	_, err := svc.Accept(context.Background(), 1, opened.ID)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), 1, opened.ID, dto.ReferralReturnRequest{})
	require.Error(t, err)

	// the failed validation must not have advanced the workflow
	current, err := svc.List(context.Background(), 1, models.ReferralStatusInProgress)
	require.NoError(t, err)
	require.Len(t, current, 1)
}

func TestReferralNotFound(t *testing.T) {
	svc := newReferralService(&fakeReferralRepo{})

	_, err := svc.Accept(context.Background(), 1, 42)
	require.ErrorIs(t, err, ErrReferralNotFound)
}
