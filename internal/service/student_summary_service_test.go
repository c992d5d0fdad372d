package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

func summaryFixture() (*fakeAttendanceHistoryRepo, *fakeExcuseRepo, *fakeBehaviorRepo, *fakeObservationRepo, *fakeExitRepo, StudentSummaryService) {
	attendance := &fakeAttendanceHistoryRepo{}
	excuses := &fakeExcuseRepo{}
	behaviors := &fakeBehaviorRepo{}
	observations := &fakeObservationRepo{}
	exits := &fakeExitRepo{}
	students := &fakeStudentRepo{students: []models.Student{
		{StudentID: "S-1", Name: "Huda", Grade: "10", ClassName: "B"},
	}}

	svc := NewStudentSummaryService(students, attendance, excuses, behaviors, observations, exits, testLogger())
	return attendance, excuses, behaviors, observations, exits, svc
}

func TestStudentSummaryMetrics(t *testing.T) {
	attendance, excuses, behaviors, observations, exits, svc := summaryFixture()

	attendance.rows = []repository.StudentHistoryRow{
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-01", Status: models.AttendanceStatusAbsent},
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-02", Status: models.AttendanceStatusAbsent},
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-03", Status: models.AttendanceStatusLate},
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-04", Status: models.AttendanceStatusPresent},
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-05", Status: models.AttendanceStatusPresent},
	}
	excuses.requests = []models.ExcuseRequest{
		{ID: 1, StudentID: "S-1", Date: "2024-05-01", Status: models.ExcuseStatusApproved},
		{ID: 2, StudentID: "S-1", Date: "2024-05-02", Status: models.ExcuseStatusPending},
	}
	behaviors.records = []models.BehaviorRecord{
		{ID: 1, StudentID: "S-1", Date: "2024-05-01", ViolationName: "uniform", Points: -5},
		{ID: 2, StudentID: "S-1", Date: "2024-05-04", ViolationName: "tardiness", Points: -10},
	}
	observations.observations = []models.StudentObservation{
		{ID: 1, StudentID: "S-1", Date: "2024-05-02", Type: models.ObservationPositive, Content: "helped a classmate"},
	}
	exits.permissions = []models.ExitPermission{
		{ID: 1, StudentID: "S-1", Status: models.ExitStatusCompleted},
	}

	summary, err := svc.Summary(context.Background(), 1, "S-1")
	require.NoError(t, err)

	require.Equal(t, "Huda", summary.StudentName)
	// 5 recorded days - 2 absent - 1 late
	require.Equal(t, 2, summary.PresentDays)
	// the pending excuse still counts the absence as unexcused
	require.Equal(t, 1, summary.UnexcusedAbsences)
	require.Equal(t, 1, summary.ExcusedAbsences)
	require.Equal(t, 1, summary.LateCount)
	require.Equal(t, 1, summary.ExitCount)
	require.Equal(t, -15, summary.PointsTotal)

	require.NotNil(t, summary.LatestViolation)
	require.Equal(t, "tardiness", summary.LatestViolation.ViolationName)
	require.NotNil(t, summary.LatestObservation)
	require.Equal(t, "helped a classmate", summary.LatestObservation.Content)
}

func TestStudentSummaryNameFallbackExcuse(t *testing.T) {
	attendance, excuses, _, _, _, svc := summaryFixture()

	attendance.rows = []repository.StudentHistoryRow{
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-01", Status: models.AttendanceStatusAbsent},
	}
	// legacy row keyed only by name
	excuses.requests = []models.ExcuseRequest{
		{ID: 1, StudentName: "Huda", Date: "2024-05-01", Status: models.ExcuseStatusApproved},
	}

	summary, err := svc.Summary(context.Background(), 1, "S-1")
	require.NoError(t, err)
	require.Equal(t, 0, summary.UnexcusedAbsences)
	require.Equal(t, 1, summary.ExcusedAbsences)
}

func TestStudentSummaryPresentNeverNegative(t *testing.T) {
	attendance, _, _, _, _, svc := summaryFixture()

	attendance.rows = []repository.StudentHistoryRow{
		{StudentID: "S-1", StudentName: "Huda", Date: "2024-05-01", Status: models.AttendanceStatusAbsent},
	}

	summary, err := svc.Summary(context.Background(), 1, "S-1")
	require.NoError(t, err)
	require.Equal(t, 0, summary.PresentDays)
}

func TestStudentSummaryUnknownStudent(t *testing.T) {
	_, _, _, _, _, svc := summaryFixture()

	_, err := svc.Summary(context.Background(), 1, "S-404")
	require.ErrorIs(t, err, ErrStudentNotFound)
}
