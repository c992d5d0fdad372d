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

// AttendanceHandler exposes attendance sheet recording and reporting routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires attendance routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/sheets", h.recordSheet)
	router.Get("/sheets/:id", h.getSheet)
	router.Get("/daily-report", h.dailyReport)
	router.Get("/stats/school", h.schoolStats)
	router.Get("/stats/roster", h.rosterStats)
}

func (h *AttendanceHandler) recordSheet(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.AttendanceSheetCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RecordSheet(c.Context(), schoolID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSparsePresentRow):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to record attendance sheet")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record attendance sheet")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance sheet recorded", response)
}

func (h *AttendanceHandler) getSheet(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.GetSheet(c.Context(), schoolID, id)
	if err != nil {
		if errors.Is(err, service.ErrSheetNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to load attendance sheet")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load attendance sheet")
	}

	return utils.SendSuccess(c, "attendance sheet", response)
}

func (h *AttendanceHandler) dailyReport(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "date is required")
	}

	response, err := h.service.DailyReport(c.Context(), schoolID, date)
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("failed to build daily report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build daily report")
	}

	return utils.SendSuccess(c, "daily attendance report", response)
}

func (h *AttendanceHandler) schoolStats(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.SchoolStats(c.Context(), schoolID, attendanceFilterFromQuery(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute school attendance stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute attendance stats")
	}

	return utils.SendSuccess(c, "school attendance stats", response)
}

func (h *AttendanceHandler) rosterStats(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.RosterStats(c.Context(), schoolID, attendanceFilterFromQuery(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute roster attendance stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute attendance stats")
	}

	return utils.SendSuccess(c, "roster attendance stats", response)
}

func attendanceFilterFromQuery(c *fiber.Ctx) models.AttendanceFilter {
	return models.AttendanceFilter{
		Date:      strings.TrimSpace(c.Query("date")),
		DateFrom:  strings.TrimSpace(c.Query("date_from")),
		DateTo:    strings.TrimSpace(c.Query("date_to")),
		Grade:     strings.TrimSpace(c.Query("grade")),
		ClassName: strings.TrimSpace(c.Query("class")),
		StudentID: strings.TrimSpace(c.Query("student_id")),
	}
}
