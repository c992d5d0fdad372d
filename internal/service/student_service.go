package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

// StudentService manages the student roster for a school.
type StudentService interface {
	Register(ctx context.Context, schoolID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	Update(ctx context.Context, schoolID uint, studentID string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Get(ctx context.Context, schoolID uint, studentID string) (dto.StudentResponse, error)
	List(ctx context.Context, schoolID uint, filter models.StudentFilter) ([]dto.StudentResponse, int64, error)
	ListByParent(ctx context.Context, schoolID uint, parentCivilID string) ([]dto.StudentResponse, error)
}

type studentService struct {
	students repository.StudentRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewStudentService constructs the student roster service.
func NewStudentService(students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		students: students,
		validate: validate,
		logger:   logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Register(ctx context.Context, schoolID uint, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		SchoolID:      schoolID,
		StudentID:     payload.StudentID,
		Name:          payload.Name,
		Grade:         payload.Grade,
		ClassName:     payload.ClassName,
		Phone:         payload.Phone,
		ParentCivilID: payload.ParentCivilID,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, schoolID uint, studentID string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByCode(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentResponse{}, ErrStudentNotFound
	}

	if payload.Name != nil {
		student.Name = *payload.Name
	}
	if payload.Grade != nil {
		student.Grade = *payload.Grade
	}
	if payload.ClassName != nil {
		student.ClassName = *payload.ClassName
	}
	if payload.Phone != nil {
		student.Phone = *payload.Phone
	}

	if err := s.students.Update(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Get(ctx context.Context, schoolID uint, studentID string) (dto.StudentResponse, error) {
	student, err := s.students.GetByCode(ctx, schoolID, studentID)
	if err != nil {
		return dto.StudentResponse{}, ErrStudentNotFound
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, schoolID uint, filter models.StudentFilter) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.students.List(ctx, schoolID, filter)
	if err != nil {
		return nil, 0, err
	}

	return dto.NewStudentResponseSlice(students), total, nil
}

func (s *studentService) ListByParent(ctx context.Context, schoolID uint, parentCivilID string) ([]dto.StudentResponse, error) {
	students, err := s.students.ListByParent(ctx, schoolID, parentCivilID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(students), nil
}
