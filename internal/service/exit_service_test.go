package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
)

type fakeExitRepo struct {
	permissions []models.ExitPermission
}

func (f *fakeExitRepo) Create(ctx context.Context, permission *models.ExitPermission) error {
	permission.ID = uint(len(f.permissions) + 1)
	f.permissions = append(f.permissions, *permission)
	return nil
}

func (f *fakeExitRepo) GetByID(ctx context.Context, schoolID, id uint) (models.ExitPermission, error) {
	for _, permission := range f.permissions {
		if permission.ID == id {
			return permission, nil
		}
	}
	return models.ExitPermission{}, gorm.ErrRecordNotFound
}

func (f *fakeExitRepo) List(ctx context.Context, schoolID uint, studentID string) ([]models.ExitPermission, error) {
	var matched []models.ExitPermission
	for _, permission := range f.permissions {
		if studentID != "" && permission.StudentID != studentID {
			continue
		}
		matched = append(matched, permission)
	}
	return matched, nil
}

func (f *fakeExitRepo) Update(ctx context.Context, permission *models.ExitPermission) error {
	for i := range f.permissions {
		if f.permissions[i].ID == permission.ID {
			f.permissions[i] = *permission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newExitFixture(createdAt time.Time) (*fakeExitRepo, *exitService) {
	repo := &fakeExitRepo{permissions: []models.ExitPermission{{
		ID:          1,
		SchoolID:    1,
		StudentID:   "S-1",
		StudentName: "Huda",
		Status:      models.ExitStatusPendingPickup,
		CreatedAt:   createdAt,
	}}}
	svc := NewExitService(repo, validator.New(validator.WithRequiredStructEnabled()), testLogger()).(*exitService)
	return repo, svc
}

func TestExitServiceCompleteWithinWindow(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, svc := newExitFixture(issued)
	svc.now = func() time.Time { return issued.Add(30 * time.Minute) }

	completed, err := svc.Complete(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, string(models.ExitStatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)
}

func TestExitServiceRejectsExpiredPermission(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, svc := newExitFixture(issued)
	svc.now = func() time.Time { return issued.Add(time.Hour + time.Minute) }

	_, err := svc.Complete(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrExitExpired)
}

func TestExitServiceExactWindowBoundaryStillActive(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, svc := newExitFixture(issued)
	svc.now = func() time.Time { return issued.Add(time.Hour) }

	_, err := svc.Complete(context.Background(), 1, 1)
	require.NoError(t, err)
}

func TestExitServiceDoubleCompletion(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, svc := newExitFixture(issued)
	svc.now = func() time.Time { return issued.Add(10 * time.Minute) }

	_, err := svc.Complete(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrExitCompleted)
}

func TestExitServiceListMarksExpiredInactive(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo, svc := newExitFixture(issued)
	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }

	_, err := svc.Issue(context.Background(), 1, dto.ExitPermissionCreateRequest{StudentID: "S-2", StudentName: "Omar"})
	require.NoError(t, err)
	repo.permissions[1].CreatedAt = svc.now()

	listed, err := svc.List(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.False(t, listed[0].Active)
	require.True(t, listed[1].Active)
}
