package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

type fakeAttendanceHistoryRepo struct {
	rows []repository.StudentHistoryRow
}

func (f *fakeAttendanceHistoryRepo) CreateSheet(ctx context.Context, sheet *models.AttendanceSheet) error {
	return nil
}

func (f *fakeAttendanceHistoryRepo) GetSheet(ctx context.Context, schoolID, id uint) (models.AttendanceSheet, error) {
	return models.AttendanceSheet{}, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceHistoryRepo) ListSheets(ctx context.Context, schoolID uint, filter models.AttendanceFilter) ([]models.AttendanceSheet, error) {
	return nil, nil
}

func (f *fakeAttendanceHistoryRepo) StudentHistory(ctx context.Context, schoolID uint, studentID string) ([]repository.StudentHistoryRow, error) {
	var rows []repository.StudentHistoryRow
	for _, row := range f.rows {
		if row.StudentID == studentID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeAttendanceHistoryRepo) SchoolHistory(ctx context.Context, schoolID uint) ([]repository.StudentHistoryRow, error) {
	return f.rows, nil
}

type fakeExcuseRepo struct {
	requests []models.ExcuseRequest
}

func (f *fakeExcuseRepo) Create(ctx context.Context, request *models.ExcuseRequest) error {
	request.ID = uint(len(f.requests) + 1)
	f.requests = append(f.requests, *request)
	return nil
}

func (f *fakeExcuseRepo) GetByID(ctx context.Context, schoolID, id uint) (models.ExcuseRequest, error) {
	for _, request := range f.requests {
		if request.ID == id {
			return request, nil
		}
	}
	return models.ExcuseRequest{}, gorm.ErrRecordNotFound
}

func (f *fakeExcuseRepo) List(ctx context.Context, schoolID uint, filter repository.ExcuseFilter) ([]models.ExcuseRequest, error) {
	var matched []models.ExcuseRequest
	for _, request := range f.requests {
		if filter.Date != "" && request.Date != filter.Date {
			continue
		}
		if filter.StudentID != "" && request.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		matched = append(matched, request)
	}
	return matched, nil
}

func (f *fakeExcuseRepo) Update(ctx context.Context, request *models.ExcuseRequest) error {
	for i := range f.requests {
		if f.requests[i].ID == request.ID {
			f.requests[i] = *request
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeStudentRepo struct {
	students []models.Student
}

func (f *fakeStudentRepo) List(ctx context.Context, schoolID uint, filter models.StudentFilter) ([]models.Student, int64, error) {
	return f.students, int64(len(f.students)), nil
}

func (f *fakeStudentRepo) GetByCode(ctx context.Context, schoolID uint, studentID string) (models.Student, error) {
	for _, student := range f.students {
		if student.StudentID == studentID {
			return student, nil
		}
	}
	return models.Student{}, gorm.ErrRecordNotFound
}

func (f *fakeStudentRepo) ListByParent(ctx context.Context, schoolID uint, parentCivilID string) ([]models.Student, error) {
	var matched []models.Student
	for _, student := range f.students {
		if student.ParentCivilID == parentCivilID {
			matched = append(matched, student)
		}
	}
	return matched, nil
}

func (f *fakeStudentRepo) RosterByClass(ctx context.Context, schoolID uint) (map[string]int, error) {
	roster := make(map[string]int)
	for _, student := range f.students {
		roster[student.Grade+" - "+student.ClassName]++
	}
	return roster, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	return nil
}

type fakeFollowUpRepo struct {
	cases []models.AbsenceFollowUp
}

func (f *fakeFollowUpRepo) Create(ctx context.Context, followUp *models.AbsenceFollowUp) error {
	followUp.ID = uint(len(f.cases) + 1)
	f.cases = append(f.cases, *followUp)
	return nil
}

func (f *fakeFollowUpRepo) GetByID(ctx context.Context, schoolID, id uint) (models.AbsenceFollowUp, error) {
	for _, c := range f.cases {
		if c.ID == id {
			return c, nil
		}
	}
	return models.AbsenceFollowUp{}, gorm.ErrRecordNotFound
}

func (f *fakeFollowUpRepo) FindActive(ctx context.Context, schoolID uint, studentID string) (*models.AbsenceFollowUp, error) {
	for i := len(f.cases) - 1; i >= 0; i-- {
		if f.cases[i].StudentID == studentID && f.cases[i].Status != models.FollowUpStatusResolved {
			c := f.cases[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeFollowUpRepo) List(ctx context.Context, schoolID uint, status models.FollowUpStatus) ([]models.AbsenceFollowUp, error) {
	var matched []models.AbsenceFollowUp
	for _, c := range f.cases {
		if status != "" && c.Status != status {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

func (f *fakeFollowUpRepo) Update(ctx context.Context, followUp *models.AbsenceFollowUp) error {
	for i := range f.cases {
		if f.cases[i].ID == followUp.ID {
			f.cases[i] = *followUp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func absentRows(studentID, name string, dates ...string) []repository.StudentHistoryRow {
	rows := make([]repository.StudentHistoryRow, 0, len(dates))
	for _, date := range dates {
		rows = append(rows, repository.StudentHistoryRow{
			StudentID:   studentID,
			StudentName: name,
			Date:        date,
			Status:      models.AttendanceStatusAbsent,
		})
	}
	return rows
}

func TestRiskServiceFlagsThreeConsecutiveAbsences(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-05")}
	svc := NewRiskService(attendance, &fakeExcuseRepo{}, &fakeStudentRepo{}, &fakeFollowUpRepo{}, 3, testLogger())

	entries, err := svc.AtRiskList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "S-1", entries[0].StudentID)
	require.Equal(t, 3, entries[0].RunLength)
	require.Equal(t, "2024-05-05", entries[0].LastAbsenceDate)
}

func TestRiskServicePresentDayResetsRun(t *testing.T) {
	rows := absentRows("S-1", "Huda", "2024-05-01", "2024-05-02")
	rows = append(rows, repository.StudentHistoryRow{
		StudentID: "S-1", StudentName: "Huda", Date: "2024-05-03", Status: models.AttendanceStatusPresent,
	})
	rows = append(rows, absentRows("S-1", "Huda", "2024-05-04", "2024-05-05")...)

	attendance := &fakeAttendanceHistoryRepo{rows: rows}
	svc := NewRiskService(attendance, &fakeExcuseRepo{}, &fakeStudentRepo{}, &fakeFollowUpRepo{}, 3, testLogger())

	entries, err := svc.AtRiskList(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRiskServicePendingExcuseSuppressesWarning(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")}
	excuses := &fakeExcuseRepo{requests: []models.ExcuseRequest{
		{ID: 1, StudentID: "S-1", Date: "2024-05-03", Status: models.ExcuseStatusPending},
	}}
	svc := NewRiskService(attendance, excuses, &fakeStudentRepo{}, &fakeFollowUpRepo{}, 3, testLogger())

	entries, err := svc.AtRiskList(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRiskServiceRejectedExcuseDoesNotSuppress(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")}
	excuses := &fakeExcuseRepo{requests: []models.ExcuseRequest{
		{ID: 1, StudentID: "S-1", Date: "2024-05-03", Status: models.ExcuseStatusRejected},
	}}
	svc := NewRiskService(attendance, excuses, &fakeStudentRepo{}, &fakeFollowUpRepo{}, 3, testLogger())

	entries, err := svc.AtRiskList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRiskServiceIncludesFollowUpStatus(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")}
	followUps := &fakeFollowUpRepo{}
	students := &fakeStudentRepo{students: []models.Student{
		{StudentID: "S-1", Name: "Huda", Grade: "10", ClassName: "B"},
	}}
	svc := NewRiskService(attendance, &fakeExcuseRepo{}, students, followUps, 3, testLogger())

	opened, err := svc.OpenFollowUp(context.Background(), 1, "S-1")
	require.NoError(t, err)
	require.Equal(t, string(models.FollowUpStatusOpen), opened.Status)
	require.Equal(t, "2024-05-03", opened.TriggerDate)
	require.Equal(t, 3, opened.RunLength)

	entries, err := svc.AtRiskList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "open", entries[0].FollowUpStatus)
	require.Equal(t, "10", entries[0].Grade)
	require.Equal(t, "B", entries[0].ClassName)
}

func TestRiskServiceOpenFollowUpIsIdempotent(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")}
	followUps := &fakeFollowUpRepo{}
	svc := NewRiskService(attendance, &fakeExcuseRepo{}, &fakeStudentRepo{}, followUps, 3, testLogger())

	first, err := svc.OpenFollowUp(context.Background(), 1, "S-1")
	require.NoError(t, err)
	second, err := svc.OpenFollowUp(context.Background(), 1, "S-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, followUps.cases, 1)
}

func TestRiskServiceFollowUpLifecycle(t *testing.T) {
	attendance := &fakeAttendanceHistoryRepo{rows: absentRows("S-1", "Huda", "2024-05-01", "2024-05-02", "2024-05-03")}
	followUps := &fakeFollowUpRepo{}
	svc := NewRiskService(attendance, &fakeExcuseRepo{}, &fakeStudentRepo{}, followUps, 3, testLogger())

	opened, err := svc.OpenFollowUp(context.Background(), 1, "S-1")
	require.NoError(t, err)

	sent, err := svc.MarkLetterSent(context.Background(), 1, opened.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.FollowUpStatusLetterSent), sent.Status)

	resolved, err := svc.ResolveFollowUp(context.Background(), 1, opened.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.FollowUpStatusResolved), resolved.Status)

	_, err = svc.MarkLetterSent(context.Background(), 1, opened.ID)
	require.ErrorIs(t, err, ErrFollowUpClosed)

	_, err = svc.ResolveFollowUp(context.Background(), 1, 999)
	require.ErrorIs(t, err, ErrFollowUpNotFound)
}
