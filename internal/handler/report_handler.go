package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// ReportHandler exposes narrative report generation routes.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Post("", h.generate)
	router.Get("/students/:studentId", h.history)
}

func (h *ReportHandler) generate(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.ReportGenerateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Generate(c.Context(), schoolID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to generate report")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate report")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "report generated", response)
}

func (h *ReportHandler) history(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	studentID := c.Params("studentId")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id required")
	}

	response, err := h.service.History(c.Context(), schoolID, studentID)
	if err != nil {
		h.logger.Error().Err(err).Str("student_id", studentID).Msg("failed to list reports")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list reports")
	}

	return utils.SendSuccess(c, "report history", response)
}
