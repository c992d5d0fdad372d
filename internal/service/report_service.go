package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/observability"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
	"github.com/noah-isme/madrasah-go-api/pkg/ai"
)

const (
	fallbackNarrativeAr = "تعذر إنشاء التقرير الذكي حاليا. يمكن الاطلاع على مؤشرات الطالب في لوحة المتابعة."
	fallbackNarrativeEn = "The report narrative could not be generated right now. The student's key metrics remain available on the dashboard."
)

// ReportService turns a student's aggregated metrics into an AI-written
// narrative and persists the result.
type ReportService interface {
	Generate(ctx context.Context, schoolID uint, payload dto.ReportGenerateRequest) (dto.ReportResponse, error)
	History(ctx context.Context, schoolID uint, studentID string) ([]dto.ReportResponse, error)
}

type reportService struct {
	summaries StudentSummaryService
	students  repository.StudentRepository
	reports   repository.ReportRepository
	narrator  ai.Narrator
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewReportService constructs the report service. narrator may be nil; every
// report then carries the static fallback text.
func NewReportService(
	summaries StudentSummaryService,
	students repository.StudentRepository,
	reports repository.ReportRepository,
	narrator ai.Narrator,
	validate *validator.Validate,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		summaries: summaries,
		students:  students,
		reports:   reports,
		narrator:  narrator,
		validate:  validate,
		logger:    logger.With().Str("component", "report_service").Logger(),
	}
}

// Generate aggregates first and narrates second, so a model outage degrades
// to the fallback text instead of failing the request. Every metric handed
// to the narrator is computed here; the model only writes prose.
func (s *reportService) Generate(ctx context.Context, schoolID uint, payload dto.ReportGenerateRequest) (dto.ReportResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	summary, err := s.summaries.Summary(ctx, schoolID, payload.StudentID)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	student, err := s.students.GetByCode(ctx, schoolID, payload.StudentID)
	if err != nil {
		return dto.ReportResponse{}, ErrStudentNotFound
	}

	language := payload.Language
	if language == "" {
		language = "ar"
	}

	input := ai.ReportInput{
		StudentName:       summary.StudentName,
		Grade:             student.Grade,
		ClassName:         student.ClassName,
		PresentDays:       summary.PresentDays,
		UnexcusedAbsences: summary.UnexcusedAbsences,
		ExcusedAbsences:   summary.ExcusedAbsences,
		LateCount:         summary.LateCount,
		ExitCount:         summary.ExitCount,
		PointsTotal:       summary.PointsTotal,
		Language:          language,
	}
	if summary.LatestViolation != nil {
		input.LatestViolation = summary.LatestViolation.ViolationName
	}
	if summary.LatestObservation != nil {
		input.LatestObservation = summary.LatestObservation.Content
	}

	content, raw := s.narrate(ctx, input)

	report := models.GeneratedReport{
		SchoolID:    schoolID,
		StudentID:   summary.StudentID,
		StudentName: summary.StudentName,
		Content:     content,
		Raw:         raw,
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	return dto.NewReportResponse(report), nil
}

func (s *reportService) narrate(ctx context.Context, input ai.ReportInput) (string, datatypes.JSONMap) {
	if s.narrator == nil {
		observability.ReportsGenerated().WithLabelValues("fallback").Inc()
		return fallbackNarrative(input.Language), datatypes.JSONMap{"fallback": true}
	}

	narrative, err := s.narrator.Narrate(ctx, input)
	if err != nil || narrative.Content == "" {
		if err != nil {
			s.logger.Warn().Err(err).Str("student", input.StudentName).Msg("narrative generation failed, using fallback")
		}
		observability.ReportsGenerated().WithLabelValues("fallback").Inc()
		return fallbackNarrative(input.Language), datatypes.JSONMap{"fallback": true}
	}

	observability.ReportsGenerated().WithLabelValues("ok").Inc()

	raw := datatypes.JSONMap{}
	for key, value := range narrative.Raw {
		raw[key] = value
	}
	return narrative.Content, raw
}

func fallbackNarrative(language string) string {
	if language == "en" {
		return fallbackNarrativeEn
	}
	return fallbackNarrativeAr
}

func (s *reportService) History(ctx context.Context, schoolID uint, studentID string) ([]dto.ReportResponse, error) {
	reports, err := s.reports.ListByStudent(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewReportResponseSlice(reports), nil
}
