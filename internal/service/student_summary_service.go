package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

// ErrStudentNotFound indicates the student code does not exist in the school scope.
var ErrStudentNotFound = errors.New("student not found")

// StudentSummaryService composes the parent-portal key-metric card set for
// one student.
type StudentSummaryService interface {
	Summary(ctx context.Context, schoolID uint, studentID string) (dto.StudentSummaryResponse, error)
}

type studentSummaryService struct {
	students    repository.StudentRepository
	attendance  repository.AttendanceRepository
	excuses     repository.ExcuseRepository
	behaviors   repository.BehaviorRepository
	observation repository.ObservationRepository
	exits       repository.ExitPermissionRepository
	reconciler  *aggregate.Reconciler
	logger      zerolog.Logger
}

// NewStudentSummaryService constructs the summary composer.
func NewStudentSummaryService(
	students repository.StudentRepository,
	attendance repository.AttendanceRepository,
	excuses repository.ExcuseRepository,
	behaviors repository.BehaviorRepository,
	observation repository.ObservationRepository,
	exits repository.ExitPermissionRepository,
	logger zerolog.Logger,
) StudentSummaryService {
	return &studentSummaryService{
		students:    students,
		attendance:  attendance,
		excuses:     excuses,
		behaviors:   behaviors,
		observation: observation,
		exits:       exits,
		reconciler:  aggregate.NewReconciler(logger),
		logger:      logger.With().Str("component", "student_summary_service").Logger(),
	}
}

func (s *studentSummaryService) Summary(ctx context.Context, schoolID uint, studentID string) (dto.StudentSummaryResponse, error) {
	student, err := s.students.GetByCode(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentSummaryResponse{}, ErrStudentNotFound
	}

	summary := dto.StudentSummaryResponse{
		StudentID:   student.StudentID,
		StudentName: student.Name,
	}

	history, err := s.attendance.StudentHistory(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentSummaryResponse{}, err
	}

	requests, err := s.excuses.List(ctx, schoolID, repository.ExcuseFilter{StudentID: studentID})
	if err != nil {
		return dto.StudentSummaryResponse{}, err
	}
	// include name-keyed historical rows the id filter misses
	if student.Name != "" {
		all, err := s.excuses.List(ctx, schoolID, repository.ExcuseFilter{})
		if err != nil {
			return dto.StudentSummaryResponse{}, err
		}
		for _, request := range all {
			if request.StudentID == "" && request.StudentName == student.Name {
				requests = append(requests, request)
			}
		}
	}

	absent := 0
	for _, row := range history {
		switch row.Status {
		case models.AttendanceStatusAbsent:
			absent++
			status := s.reconciler.Resolve(studentID, student.Name, row.Date, requests)
			if aggregate.Unexcused(status) {
				summary.UnexcusedAbsences++
			} else {
				summary.ExcusedAbsences++
			}
		case models.AttendanceStatusLate:
			summary.LateCount++
		}
	}

	// recorded days only; unrecorded days never count toward presence
	summary.PresentDays = aggregate.PresentBySubtraction(len(history), absent, summary.LateCount)

	exits, err := s.exits.List(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentSummaryResponse{}, err
	}
	summary.ExitCount = len(exits)

	records, err := s.behaviors.List(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentSummaryResponse{}, err
	}
	for _, record := range records {
		summary.PointsTotal += record.Points
	}
	if latest := latestBehavior(records); latest != nil {
		response := dto.NewBehaviorResponse(*latest)
		summary.LatestViolation = &response
	}

	observations, err := s.observation.List(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentSummaryResponse{}, err
	}
	if latest := latestObservation(observations); latest != nil {
		response := dto.NewObservationResponse(*latest)
		summary.LatestObservation = &response
	}

	return summary, nil
}

// latestBehavior picks the most recent record by date, breaking date ties by
// id so "latest" is deterministic regardless of storage order.
func latestBehavior(records []models.BehaviorRecord) *models.BehaviorRecord {
	if len(records) == 0 {
		return nil
	}
	sorted := append([]models.BehaviorRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	return &sorted[0]
}

func latestObservation(observations []models.StudentObservation) *models.StudentObservation {
	if len(observations) == 0 {
		return nil
	}
	sorted := append([]models.StudentObservation(nil), observations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	return &sorted[0]
}
