package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

var (
	// ErrSheetNotFound indicates the attendance sheet does not exist in the school scope.
	ErrSheetNotFound = errors.New("attendance sheet not found")
	// ErrSparsePresentRow indicates a sparse sheet carried an explicit PRESENT row.
	ErrSparsePresentRow = errors.New("sparse sheets may only contain absent and late rows")
)

// AttendanceService records daily sheets and produces reports and statistics.
type AttendanceService interface {
	RecordSheet(ctx context.Context, schoolID uint, payload dto.AttendanceSheetCreateRequest) (dto.AttendanceSheetResponse, error)
	GetSheet(ctx context.Context, schoolID, id uint) (dto.AttendanceSheetResponse, error)
	DailyReport(ctx context.Context, schoolID uint, date string) (dto.DailyReportResponse, error)
	SchoolStats(ctx context.Context, schoolID uint, filter models.AttendanceFilter) (dto.AttendanceStatsResponse, error)
	RosterStats(ctx context.Context, schoolID uint, filter models.AttendanceFilter) (dto.AttendanceStatsResponse, error)
}

type attendanceService struct {
	sheets     repository.AttendanceRepository
	excuses    repository.ExcuseRepository
	students   repository.StudentRepository
	reconciler *aggregate.Reconciler
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(sheets repository.AttendanceRepository, excuses repository.ExcuseRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		sheets:     sheets,
		excuses:    excuses,
		students:   students,
		reconciler: aggregate.NewReconciler(logger),
		validate:   validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) RecordSheet(ctx context.Context, schoolID uint, payload dto.AttendanceSheetCreateRequest) (dto.AttendanceSheetResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.AttendanceSheetResponse{}, err
	}

	kind := models.SheetKind(payload.Kind)
	if kind == "" {
		kind = models.SheetKindSparse
	}

	entries := make([]models.AttendanceEntry, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		status := models.AttendanceStatus(entry.Status)
		if kind == models.SheetKindSparse && status == models.AttendanceStatusPresent {
			return dto.AttendanceSheetResponse{}, ErrSparsePresentRow
		}
		entries = append(entries, models.AttendanceEntry{
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			Status:      status,
		})
	}

	sheet := models.AttendanceSheet{
		SchoolID:  schoolID,
		Date:      payload.Date,
		Grade:     payload.Grade,
		ClassName: payload.ClassName,
		Kind:      kind,
		Entries:   entries,
	}

	if err := s.sheets.CreateSheet(ctx, &sheet); err != nil {
		return dto.AttendanceSheetResponse{}, err
	}

	s.logger.Info().
		Str("date", sheet.Date).
		Str("class", aggregate.ClassKey(sheet.Grade, sheet.ClassName)).
		Int("entries", len(sheet.Entries)).
		Msg("attendance sheet recorded")

	return s.sheetResponse(ctx, schoolID, sheet)
}

func (s *attendanceService) GetSheet(ctx context.Context, schoolID, id uint) (dto.AttendanceSheetResponse, error) {
	sheet, err := s.sheets.GetSheet(ctx, schoolID, id)
	if err != nil {
		return dto.AttendanceSheetResponse{}, ErrSheetNotFound
	}

	return s.sheetResponse(ctx, schoolID, sheet)
}

// DailyReport flattens the date's absent/late rows and attaches the
// reconciled excuse status to each one.
func (s *attendanceService) DailyReport(ctx context.Context, schoolID uint, date string) (dto.DailyReportResponse, error) {
	sheets, err := s.sheets.ListSheets(ctx, schoolID, models.AttendanceFilter{Date: date})
	if err != nil {
		return dto.DailyReportResponse{}, err
	}

	requests, err := s.excuses.List(ctx, schoolID, repository.ExcuseFilter{Date: date})
	if err != nil {
		return dto.DailyReportResponse{}, err
	}

	report := dto.DailyReportResponse{Date: date, Entries: []dto.AttendanceEntryResponse{}}
	for _, sheet := range sheets {
		for _, entry := range sheet.Entries {
			switch entry.Status {
			case models.AttendanceStatusAbsent:
				report.TotalAbsent++
			case models.AttendanceStatusLate:
				report.TotalLate++
			default:
				continue
			}

			report.Entries = append(report.Entries, dto.AttendanceEntryResponse{
				StudentID:    entry.StudentID,
				StudentName:  entry.StudentName,
				Status:       string(entry.Status),
				ExcuseStatus: s.reconciler.Resolve(entry.StudentID, entry.StudentName, sheet.Date, requests),
			})
		}
	}

	return report, nil
}

// SchoolStats aggregates full sheets, counting explicit PRESENT rows. It
// intentionally ignores sparse sheets; those are the roster-derived path.
func (s *attendanceService) SchoolStats(ctx context.Context, schoolID uint, filter models.AttendanceFilter) (dto.AttendanceStatsResponse, error) {
	sheets, err := s.sheets.ListSheets(ctx, schoolID, filter)
	if err != nil {
		return dto.AttendanceStatsResponse{}, err
	}

	full := make([]aggregate.FullSheet, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.Kind != models.SheetKindFull {
			continue
		}
		full = append(full, toFullSheet(sheet))
	}

	return dto.NewAttendanceStatsResponse(aggregate.AggregateFull(full)), nil
}

// RosterStats aggregates sparse sheets against the assigned roster, deriving
// present counts by subtraction.
func (s *attendanceService) RosterStats(ctx context.Context, schoolID uint, filter models.AttendanceFilter) (dto.AttendanceStatsResponse, error) {
	sheets, err := s.sheets.ListSheets(ctx, schoolID, filter)
	if err != nil {
		return dto.AttendanceStatsResponse{}, err
	}

	roster, err := s.students.RosterByClass(ctx, schoolID)
	if err != nil {
		return dto.AttendanceStatsResponse{}, err
	}

	sparse := make([]aggregate.SparseSheet, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.Kind != models.SheetKindSparse {
			continue
		}
		sparse = append(sparse, toSparseSheet(sheet))
	}

	return dto.NewAttendanceStatsResponse(aggregate.AggregateSparse(sparse, roster)), nil
}

func (s *attendanceService) sheetResponse(ctx context.Context, schoolID uint, sheet models.AttendanceSheet) (dto.AttendanceSheetResponse, error) {
	requests, err := s.excuses.List(ctx, schoolID, repository.ExcuseFilter{Date: sheet.Date})
	if err != nil {
		return dto.AttendanceSheetResponse{}, err
	}

	entries := make([]dto.AttendanceEntryResponse, 0, len(sheet.Entries))
	for _, entry := range sheet.Entries {
		entries = append(entries, dto.AttendanceEntryResponse{
			StudentID:    entry.StudentID,
			StudentName:  entry.StudentName,
			Status:       string(entry.Status),
			ExcuseStatus: s.reconciler.Resolve(entry.StudentID, entry.StudentName, sheet.Date, requests),
		})
	}

	return dto.AttendanceSheetResponse{
		ID:        sheet.ID,
		Date:      sheet.Date,
		Grade:     sheet.Grade,
		ClassName: sheet.ClassName,
		Kind:      string(sheet.Kind),
		Entries:   entries,
		CreatedAt: sheet.CreatedAt,
	}, nil
}

func toFullSheet(sheet models.AttendanceSheet) aggregate.FullSheet {
	return aggregate.FullSheet{
		Date:      sheet.Date,
		Grade:     sheet.Grade,
		ClassName: sheet.ClassName,
		Entries:   toEntries(sheet.Entries),
	}
}

func toSparseSheet(sheet models.AttendanceSheet) aggregate.SparseSheet {
	return aggregate.SparseSheet{
		Date:      sheet.Date,
		Grade:     sheet.Grade,
		ClassName: sheet.ClassName,
		Entries:   toEntries(sheet.Entries),
	}
}

func toEntries(entries []models.AttendanceEntry) []aggregate.Entry {
	out := make([]aggregate.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, aggregate.Entry{
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			Status:      entry.Status,
		})
	}
	return out
}
