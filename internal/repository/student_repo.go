package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// StudentRepository provides access to student records within a school.
type StudentRepository interface {
	List(ctx context.Context, schoolID uint, filter models.StudentFilter) ([]models.Student, int64, error)
	GetByCode(ctx context.Context, schoolID uint, studentID string) (models.Student, error)
	ListByParent(ctx context.Context, schoolID uint, parentCivilID string) ([]models.Student, error)
	RosterByClass(ctx context.Context, schoolID uint) (map[string]int, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, schoolID uint, filter models.StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("school_id = ?", schoolID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(student_id) LIKE ?", pattern, pattern)
	}
	if filter.Grade != "" {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.ClassName != "" {
		query = query.Where("class_name = ?", filter.ClassName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var students []models.Student
	if err := query.Order("name ASC").Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByCode(ctx context.Context, schoolID uint, studentID string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND student_id = ?", schoolID, studentID).
		First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ListByParent(ctx context.Context, schoolID uint, parentCivilID string) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).
		Where("school_id = ? AND parent_civil_id = ?", schoolID, parentCivilID).
		Order("name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

// RosterByClass returns the number of assigned students per class key
// ("{grade} - {className}"), the denominator for present-by-subtraction.
func (r *studentRepository) RosterByClass(ctx context.Context, schoolID uint) (map[string]int, error) {
	type row struct {
		Grade     string
		ClassName string
		Count     int
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("grade, class_name, COUNT(*) as count").
		Where("school_id = ?", schoolID).
		Group("grade, class_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	roster := make(map[string]int, len(rows))
	for _, r := range rows {
		roster[r.Grade+" - "+r.ClassName] = r.Count
	}

	return roster, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}
