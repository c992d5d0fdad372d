package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// StudentHistoryRow is one school-recorded day for one student, flattened
// from the nested sheet shape for streak scanning.
type StudentHistoryRow struct {
	StudentID   string                  `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Date        string                  `json:"date"`
	Status      models.AttendanceStatus `json:"status"`
}

// AttendanceRepository handles persistence for daily attendance sheets.
type AttendanceRepository interface {
	CreateSheet(ctx context.Context, sheet *models.AttendanceSheet) error
	GetSheet(ctx context.Context, schoolID, id uint) (models.AttendanceSheet, error)
	ListSheets(ctx context.Context, schoolID uint, filter models.AttendanceFilter) ([]models.AttendanceSheet, error)
	StudentHistory(ctx context.Context, schoolID uint, studentID string) ([]StudentHistoryRow, error)
	SchoolHistory(ctx context.Context, schoolID uint) ([]StudentHistoryRow, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs a GORM-backed attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) CreateSheet(ctx context.Context, sheet *models.AttendanceSheet) error {
	return r.db.WithContext(ctx).Create(sheet).Error
}

func (r *attendanceRepository) GetSheet(ctx context.Context, schoolID, id uint) (models.AttendanceSheet, error) {
	var sheet models.AttendanceSheet
	if err := r.db.WithContext(ctx).
		Preload("Entries").
		Where("school_id = ?", schoolID).
		First(&sheet, id).Error; err != nil {
		return models.AttendanceSheet{}, err
	}

	return sheet, nil
}

func (r *attendanceRepository) ListSheets(ctx context.Context, schoolID uint, filter models.AttendanceFilter) ([]models.AttendanceSheet, error) {
	query := r.db.WithContext(ctx).
		Preload("Entries").
		Where("school_id = ?", schoolID)

	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}
	if filter.Grade != "" {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.ClassName != "" {
		query = query.Where("class_name = ?", filter.ClassName)
	}

	var sheets []models.AttendanceSheet
	if err := query.Order("date ASC").Find(&sheets).Error; err != nil {
		return nil, err
	}

	return sheets, nil
}

// StudentHistory returns one student's recorded days ordered by date
// ascending, ready for streak scanning.
func (r *attendanceRepository) StudentHistory(ctx context.Context, schoolID uint, studentID string) ([]StudentHistoryRow, error) {
	var rows []StudentHistoryRow
	if err := r.db.WithContext(ctx).
		Model(&models.AttendanceEntry{}).
		Select("attendance_entries.student_id, attendance_entries.student_name, attendance_sheets.date, attendance_entries.status").
		Joins("JOIN attendance_sheets ON attendance_sheets.id = attendance_entries.attendance_sheet_id").
		Where("attendance_sheets.school_id = ? AND attendance_entries.student_id = ?", schoolID, studentID).
		Order("attendance_sheets.date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// SchoolHistory returns every recorded day for every student in the school,
// ordered by date ascending. The risk scanner groups it per student.
func (r *attendanceRepository) SchoolHistory(ctx context.Context, schoolID uint) ([]StudentHistoryRow, error) {
	var rows []StudentHistoryRow
	if err := r.db.WithContext(ctx).
		Model(&models.AttendanceEntry{}).
		Select("attendance_entries.student_id, attendance_entries.student_name, attendance_sheets.date, attendance_entries.status").
		Joins("JOIN attendance_sheets ON attendance_sheets.id = attendance_entries.attendance_sheet_id").
		Where("attendance_sheets.school_id = ? AND attendance_entries.student_id <> ''", schoolID).
		Order("attendance_sheets.date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
