package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// DashboardHandler exposes school dashboard and student summary routes.
type DashboardHandler struct {
	dashboard service.DashboardService
	summaries service.StudentSummaryService
	logger    zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService, summaries service.StudentSummaryService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		summaries: summaries,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("/students/:studentId", h.studentSummary)
}

func (h *DashboardHandler) summary(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.dashboard.Summary(c.Context(), schoolID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard summary")
	}

	return utils.SendSuccess(c, "dashboard summary", response)
}

func (h *DashboardHandler) studentSummary(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	studentID := c.Params("studentId")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id required")
	}

	response, err := h.summaries.Summary(c.Context(), schoolID, studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Str("student_id", studentID).Msg("failed to build student summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build student summary")
	}

	return utils.SendSuccess(c, "student summary", response)
}
