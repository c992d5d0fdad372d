package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

func excuseFixture() (*fakeExcuseRepo, ExcuseService) {
	repo := &fakeExcuseRepo{}
	svc := NewExcuseService(repo, nil, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return repo, svc
}

func TestExcuseSubmitStartsPending(t *testing.T) {
	_, svc := excuseFixture()

	submitted, err := svc.Submit(context.Background(), 1, dto.ExcuseCreateRequest{
		StudentID:   "S-1",
		StudentName: "Huda",
		Date:        "2024-05-01",
		Reason:      "medical appointment",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ExcuseStatusPending), submitted.Status)
}

func TestExcuseReviewApproves(t *testing.T) {
	_, svc := excuseFixture()

	submitted, err := svc.Submit(context.Background(), 1, dto.ExcuseCreateRequest{
		StudentID:   "S-1",
		StudentName: "Huda",
		Date:        "2024-05-01",
		Reason:      "medical appointment",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), 1, submitted.ID, dto.ExcuseReviewRequest{Status: "APPROVED"})
	require.NoError(t, err)
	require.Equal(t, string(models.ExcuseStatusApproved), reviewed.Status)
}

func TestExcuseReviewOnlyFromPending(t *testing.T) {
	_, svc := excuseFixture()

	submitted, err := svc.Submit(context.Background(), 1, dto.ExcuseCreateRequest{
		StudentID:   "S-1",
		StudentName: "Huda",
		Date:        "2024-05-01",
		Reason:      "medical appointment",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), 1, submitted.ID, dto.ExcuseReviewRequest{Status: "REJECTED"})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), 1, submitted.ID, dto.ExcuseReviewRequest{Status: "APPROVED"})
	require.ErrorIs(t, err, ErrExcuseAlreadyDecided)
}

func TestExcuseReviewUnknownRequest(t *testing.T) {
	_, svc := excuseFixture()

	_, err := svc.Review(context.Background(), 1, 99, dto.ExcuseReviewRequest{Status: "APPROVED"})
	require.ErrorIs(t, err, ErrExcuseNotFound)
}

func TestExcuseListByStatus(t *testing.T) {
	repo, svc := excuseFixture()

	repo.requests = []models.ExcuseRequest{
		{ID: 1, StudentID: "S-1", Date: "2024-05-01", Status: models.ExcuseStatusPending},
		{ID: 2, StudentID: "S-2", Date: "2024-05-01", Status: models.ExcuseStatusApproved},
	}

	pending, err := svc.List(context.Background(), 1, repository.ExcuseFilter{Status: models.ExcuseStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "S-1", pending[0].StudentID)
}
