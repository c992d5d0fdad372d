package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

type fakeBehaviorRepo struct {
	records []models.BehaviorRecord
}

func (f *fakeBehaviorRepo) Create(ctx context.Context, record *models.BehaviorRecord) error {
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeBehaviorRepo) GetByID(ctx context.Context, schoolID, id uint) (models.BehaviorRecord, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.BehaviorRecord{}, gorm.ErrRecordNotFound
}

func (f *fakeBehaviorRepo) List(ctx context.Context, schoolID uint, studentID string) ([]models.BehaviorRecord, error) {
	var matched []models.BehaviorRecord
	for _, record := range f.records {
		if studentID != "" && record.StudentID != studentID {
			continue
		}
		matched = append(matched, record)
	}
	return matched, nil
}

func (f *fakeBehaviorRepo) Delete(ctx context.Context, schoolID, id uint) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeObservationRepo struct {
	observations []models.StudentObservation
}

func (f *fakeObservationRepo) Create(ctx context.Context, observation *models.StudentObservation) error {
	observation.ID = uint(len(f.observations) + 1)
	f.observations = append(f.observations, *observation)
	return nil
}

func (f *fakeObservationRepo) GetByID(ctx context.Context, schoolID, id uint) (models.StudentObservation, error) {
	for _, observation := range f.observations {
		if observation.ID == id {
			return observation, nil
		}
	}
	return models.StudentObservation{}, gorm.ErrRecordNotFound
}

func (f *fakeObservationRepo) List(ctx context.Context, schoolID uint, studentID string) ([]models.StudentObservation, error) {
	var matched []models.StudentObservation
	for _, observation := range f.observations {
		if studentID != "" && observation.StudentID != studentID {
			continue
		}
		matched = append(matched, observation)
	}
	return matched, nil
}

func (f *fakeObservationRepo) Update(ctx context.Context, observation *models.StudentObservation) error {
	for i := range f.observations {
		if f.observations[i].ID == observation.ID {
			f.observations[i] = *observation
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeObservationRepo) Delete(ctx context.Context, schoolID, id uint) error {
	return nil
}

func dashboardFixture(t *testing.T, cache *redis.Client) (DashboardService, *fakeBehaviorRepo) {
	t.Helper()

	history := absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")
	history = append(history, absentRows("S-2", "Omar", "2024-05-03")...)
	attendanceRepo := &fakeAttendanceHistoryRepo{rows: history}

	behaviorRepo := &fakeBehaviorRepo{}
	for i := 0; i < 3; i++ {
		behaviorRepo.records = append(behaviorRepo.records, models.BehaviorRecord{
			ID: uint(i + 1), StudentID: "S-2", StudentName: "Omar",
			Date: fmt.Sprintf("2024-05-0%d", i+1), ViolationName: "tardiness",
		})
	}
	behaviorRepo.records = append(behaviorRepo.records, models.BehaviorRecord{
		ID: 4, StudentID: "S-1", StudentName: "Huda", Date: "2024-05-02", ViolationName: "uniform",
	})

	observationRepo := &fakeObservationRepo{observations: []models.StudentObservation{
		{ID: 1, StudentID: "S-1", Date: "2024-05-01", Type: models.ObservationNegative, Content: "note"},
	}}

	validate := validator.New(validator.WithRequiredStructEnabled())
	attendance := NewAttendanceService(attendanceRepo, &fakeExcuseRepo{}, &fakeStudentRepo{}, validate, testLogger())
	risk := NewRiskService(attendanceRepo, &fakeExcuseRepo{}, &fakeStudentRepo{}, &fakeFollowUpRepo{}, 3, testLogger())

	svc := NewDashboardService(attendance, behaviorRepo, observationRepo, attendanceRepo, risk, cache, time.Minute, testLogger())
	return svc, behaviorRepo
}

func TestDashboardSummaryLeaderboards(t *testing.T) {
	svc, _ := dashboardFixture(t, nil)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, summary.CacheHit)

	require.Len(t, summary.MostAbsent, 2)
	require.Equal(t, "S-1", summary.MostAbsent[0].Key)
	require.Equal(t, 3, summary.MostAbsent[0].Count)

	require.Len(t, summary.MostViolations, 2)
	require.Equal(t, "S-2", summary.MostViolations[0].Key)

	require.Len(t, summary.FrequentViolation, 2)
	require.Equal(t, "tardiness", summary.FrequentViolation[0].Key)
	require.Equal(t, 3, summary.FrequentViolation[0].Count)

	require.Len(t, summary.MostObservations, 1)
	require.Equal(t, 1, summary.AtRiskCount)
}

func TestDashboardSummaryExcludesZeroCounts(t *testing.T) {
	svc, _ := dashboardFixture(t, nil)

	summary, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)

	for _, entry := range summary.MostAbsent {
		require.Positive(t, entry.Count)
	}
	for _, entry := range summary.MostLate {
		require.Positive(t, entry.Count)
	}
}

func TestDashboardSummaryCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	svc, behaviorRepo := dashboardFixture(t, redisClient)

	first, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// mutate the source to prove the second read comes from cache
	behaviorRepo.records = nil

	second, err := svc.Summary(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.MostViolations, second.MostViolations)
}
