package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrFollowUpNotFound indicates the follow-up case does not exist in this school.
	ErrFollowUpNotFound = errors.New("follow-up case not found")
	// ErrFollowUpClosed indicates the case is already resolved.
	ErrFollowUpClosed = errors.New("follow-up case already resolved")
)

// RiskService scans attendance history for students whose consecutive
// unexcused absence run crossed the warning threshold, and manages the
// persisted follow-up cases opened for them.
type RiskService interface {
	AtRiskList(ctx context.Context, schoolID uint) ([]dto.RiskEntryResponse, error)
	OpenFollowUp(ctx context.Context, schoolID uint, studentID string) (dto.FollowUpResponse, error)
	MarkLetterSent(ctx context.Context, schoolID, id uint) (dto.FollowUpResponse, error)
	ResolveFollowUp(ctx context.Context, schoolID, id uint) (dto.FollowUpResponse, error)
	ListFollowUps(ctx context.Context, schoolID uint, status models.FollowUpStatus) ([]dto.FollowUpResponse, error)
}

type riskService struct {
	attendanceRepo repository.AttendanceRepository
	excuseRepo     repository.ExcuseRepository
	studentRepo    repository.StudentRepository
	followUpRepo   repository.FollowUpRepository
	reconciler     *aggregate.Reconciler
	threshold      int
	logger         zerolog.Logger
}

// NewRiskService constructs the at-risk scanner. A threshold below one falls
// back to the default of three consecutive absences.
func NewRiskService(
	attendanceRepo repository.AttendanceRepository,
	excuseRepo repository.ExcuseRepository,
	studentRepo repository.StudentRepository,
	followUpRepo repository.FollowUpRepository,
	threshold int,
	logger zerolog.Logger,
) RiskService {
	if threshold < 1 {
		threshold = aggregate.DefaultRiskThreshold
	}
	return &riskService{
		attendanceRepo: attendanceRepo,
		excuseRepo:     excuseRepo,
		studentRepo:    studentRepo,
		followUpRepo:   followUpRepo,
		reconciler:     aggregate.NewReconciler(logger),
		threshold:      threshold,
		logger:         logger.With().Str("component", "risk_service").Logger(),
	}
}

// AtRiskList returns students whose current absence run meets the threshold
// and who have no live excuse covering the most recent absence date. A
// pending or approved excuse suppresses the warning even though a pending one
// still counts as unexcused in attendance statistics.
func (s *riskService) AtRiskList(ctx context.Context, schoolID uint) ([]dto.RiskEntryResponse, error) {
	history, err := s.attendanceRepo.SchoolHistory(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	type studentTrack struct {
		name    string
		entries []aggregate.HistoryEntry
	}

	tracks := make(map[string]*studentTrack)
	order := make([]string, 0)
	for _, row := range history {
		track, ok := tracks[row.StudentID]
		if !ok {
			track = &studentTrack{name: row.StudentName}
			tracks[row.StudentID] = track
			order = append(order, row.StudentID)
		}
		track.entries = append(track.entries, aggregate.HistoryEntry{Date: row.Date, Status: row.Status})
	}

	students, _, err := s.studentRepo.List(ctx, schoolID, models.StudentFilter{})
	if err != nil {
		return nil, err
	}
	classOf := make(map[string]models.Student, len(students))
	for _, student := range students {
		classOf[student.StudentID] = student
	}

	entries := make([]dto.RiskEntryResponse, 0)
	for _, studentID := range order {
		track := tracks[studentID]
		run := aggregate.CurrentRun(aggregate.SortHistory(track.entries))
		if !aggregate.AtRisk(run, s.threshold) {
			continue
		}

		requests, err := s.excuseRepo.List(ctx, schoolID, repository.ExcuseFilter{Date: run.LastAbsenceDate})
		if err != nil {
			return nil, err
		}
		status := s.reconciler.Resolve(studentID, track.name, run.LastAbsenceDate, requests)
		if aggregate.HasLiveExcuse(status) {
			continue
		}

		entry := dto.RiskEntryResponse{
			StudentID:       studentID,
			StudentName:     track.name,
			RunLength:       run.Length,
			LastAbsenceDate: run.LastAbsenceDate,
		}
		if student, ok := classOf[studentID]; ok {
			entry.Grade = student.Grade
			entry.ClassName = student.ClassName
		}

		followUp, err := s.followUpRepo.FindActive(ctx, schoolID, studentID)
		if err != nil {
			return nil, err
		}
		if followUp != nil {
			entry.FollowUpStatus = string(followUp.Status)
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].RunLength > entries[j].RunLength })

	return entries, nil
}

// OpenFollowUp creates an open case for the student's current run. When an
// unresolved case already exists it is returned as-is, so the endpoint is
// safe to call repeatedly from the at-risk list.
func (s *riskService) OpenFollowUp(ctx context.Context, schoolID uint, studentID string) (dto.FollowUpResponse, error) {
	existing, err := s.followUpRepo.FindActive(ctx, schoolID, studentID)
	if err != nil {
		return dto.FollowUpResponse{}, err
	}
	if existing != nil {
		return dto.NewFollowUpResponse(*existing), nil
	}

	rows, err := s.attendanceRepo.StudentHistory(ctx, schoolID, studentID)
	if err != nil {
		return dto.FollowUpResponse{}, err
	}

	name := ""
	entries := make([]aggregate.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		name = row.StudentName
		entries = append(entries, aggregate.HistoryEntry{Date: row.Date, Status: row.Status})
	}
	run := aggregate.CurrentRun(aggregate.SortHistory(entries))

	followUp := models.AbsenceFollowUp{
		SchoolID:    schoolID,
		StudentID:   studentID,
		StudentName: name,
		TriggerDate: run.LastAbsenceDate,
		RunLength:   run.Length,
		Status:      models.FollowUpStatusOpen,
	}
	if err := s.followUpRepo.Create(ctx, &followUp); err != nil {
		return dto.FollowUpResponse{}, err
	}

	s.logger.Info().
		Str("student_id", studentID).
		Int("run_length", run.Length).
		Msg("absence follow-up opened")

	return dto.NewFollowUpResponse(followUp), nil
}

// MarkLetterSent records that the warning letter was printed and delivered.
func (s *riskService) MarkLetterSent(ctx context.Context, schoolID, id uint) (dto.FollowUpResponse, error) {
	return s.transition(ctx, schoolID, id, models.FollowUpStatusLetterSent)
}

// ResolveFollowUp closes the case.
func (s *riskService) ResolveFollowUp(ctx context.Context, schoolID, id uint) (dto.FollowUpResponse, error) {
	return s.transition(ctx, schoolID, id, models.FollowUpStatusResolved)
}

func (s *riskService) transition(ctx context.Context, schoolID, id uint, to models.FollowUpStatus) (dto.FollowUpResponse, error) {
	followUp, err := s.followUpRepo.GetByID(ctx, schoolID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.FollowUpResponse{}, ErrFollowUpNotFound
	}
	if err != nil {
		return dto.FollowUpResponse{}, err
	}
	if followUp.Status == models.FollowUpStatusResolved {
		return dto.FollowUpResponse{}, ErrFollowUpClosed
	}

	followUp.Status = to
	if err := s.followUpRepo.Update(ctx, &followUp); err != nil {
		return dto.FollowUpResponse{}, err
	}

	return dto.NewFollowUpResponse(followUp), nil
}

func (s *riskService) ListFollowUps(ctx context.Context, schoolID uint, status models.FollowUpStatus) ([]dto.FollowUpResponse, error) {
	followUps, err := s.followUpRepo.List(ctx, schoolID, status)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FollowUpResponse, 0, len(followUps))
	for _, followUp := range followUps {
		responses = append(responses, dto.NewFollowUpResponse(followUp))
	}

	return responses, nil
}
