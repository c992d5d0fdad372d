package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// StudentHandler exposes student roster routes.
type StudentHandler struct {
	service service.StudentService
	logger  zerolog.Logger
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(service service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register wires student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("", h.register)
	router.Get("", h.list)
	router.Get("/:studentId", h.get)
	router.Patch("/:studentId", h.update)
}

func (h *StudentHandler) register(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Register(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to register student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", response)
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	studentID := c.Params("studentId")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id required")
	}

	var payload dto.StudentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Update(c.Context(), schoolID, studentID, payload)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Str("student_id", studentID).Msg("failed to update student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update student")
	}

	return utils.SendSuccess(c, "student updated", response)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	studentID := c.Params("studentId")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id required")
	}

	response, err := h.service.Get(c.Context(), schoolID, studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Str("student_id", studentID).Msg("failed to load student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load student")
	}

	return utils.SendSuccess(c, "student", response)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	if parent := strings.TrimSpace(c.Query("parent_civil_id")); parent != "" {
		response, err := h.service.ListByParent(c.Context(), schoolID, parent)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list students by parent")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
		}
		return utils.SendSuccess(c, "students", response)
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	filter := models.StudentFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Grade:     strings.TrimSpace(c.Query("grade")),
		ClassName: strings.TrimSpace(c.Query("class")),
		Page:      page,
		PageSize:  pageSize,
	}

	response, total, err := h.service.List(c.Context(), schoolID, filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students", fiber.Map{
		"items": response,
		"total": total,
	})
}
