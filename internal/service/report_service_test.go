package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/pkg/ai"
)

type fakeReportRepo struct {
	reports []models.GeneratedReport
}

func (f *fakeReportRepo) Create(ctx context.Context, report *models.GeneratedReport) error {
	report.ID = uint(len(f.reports) + 1)
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) ListByStudent(ctx context.Context, schoolID uint, studentID string) ([]models.GeneratedReport, error) {
	var matched []models.GeneratedReport
	for _, report := range f.reports {
		if report.StudentID == studentID {
			matched = append(matched, report)
		}
	}
	return matched, nil
}

type stubNarrator struct {
	narrative ai.Narrative
	err       error
	lastInput ai.ReportInput
}

func (s *stubNarrator) Narrate(ctx context.Context, input ai.ReportInput) (ai.Narrative, error) {
	s.lastInput = input
	return s.narrative, s.err
}

func reportFixture(narrator ai.Narrator) (*fakeReportRepo, ReportService) {
	students := &fakeStudentRepo{students: []models.Student{
		{StudentID: "S-1", Name: "Huda", Grade: "10", ClassName: "B"},
	}}
	summaries := NewStudentSummaryService(
		students,
		&fakeAttendanceHistoryRepo{},
		&fakeExcuseRepo{},
		&fakeBehaviorRepo{},
		&fakeObservationRepo{},
		&fakeExitRepo{},
		testLogger(),
	)
	reports := &fakeReportRepo{}
	svc := NewReportService(summaries, students, reports, narrator, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	return reports, svc
}

func TestReportServicePersistsNarrative(t *testing.T) {
	narrator := &stubNarrator{narrative: ai.Narrative{
		Content: "Huda attended regularly this term.",
		Raw:     map[string]interface{}{"model": "gpt-4o-mini"},
	}}
	reports, svc := reportFixture(narrator)

	response, err := svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-1", Language: "en"})
	require.NoError(t, err)
	require.Equal(t, "Huda attended regularly this term.", response.Content)
	require.Equal(t, "en", narrator.lastInput.Language)
	require.Equal(t, "Huda", narrator.lastInput.StudentName)

	require.Len(t, reports.reports, 1)
	require.Equal(t, "gpt-4o-mini", reports.reports[0].Raw["model"])
}

func TestReportServiceFallbackOnNarratorError(t *testing.T) {
	narrator := &stubNarrator{err: errors.New("model unavailable")}
	reports, svc := reportFixture(narrator)

	response, err := svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-1", Language: "en"})
	require.NoError(t, err)
	require.Equal(t, fallbackNarrativeEn, response.Content)

	require.Len(t, reports.reports, 1)
	require.Equal(t, true, reports.reports[0].Raw["fallback"])
}

func TestReportServiceDefaultsToArabic(t *testing.T) {
	_, svc := reportFixture(nil)

	response, err := svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-1"})
	require.NoError(t, err)
	require.Equal(t, fallbackNarrativeAr, response.Content)
}

func TestReportServiceHistory(t *testing.T) {
	_, svc := reportFixture(nil)

	_, err := svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-1"})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-1"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 1, "S-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestReportServiceUnknownStudent(t *testing.T) {
	_, svc := reportFixture(nil)

	_, err := svc.Generate(context.Background(), 1, dto.ReportGenerateRequest{StudentID: "S-404"})
	require.ErrorIs(t, err, ErrStudentNotFound)
}
