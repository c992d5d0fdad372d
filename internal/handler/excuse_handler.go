package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// ExcuseHandler exposes excuse submission and review routes.
type ExcuseHandler struct {
	service service.ExcuseService
	logger  zerolog.Logger
}

// NewExcuseHandler constructs an excuse handler.
func NewExcuseHandler(service service.ExcuseService, logger zerolog.Logger) *ExcuseHandler {
	return &ExcuseHandler{
		service: service,
		logger:  logger.With().Str("component", "excuse_handler").Logger(),
	}
}

// Register wires excuse routes.
func (h *ExcuseHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("", h.list)
	router.Patch("/:id/review", h.review)
}

func (h *ExcuseHandler) submit(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.ExcuseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to submit excuse")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit excuse")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "excuse submitted", response)
}

func (h *ExcuseHandler) review(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ExcuseReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Review(c.Context(), schoolID, id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExcuseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExcuseAlreadyDecided):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to review excuse")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to review excuse")
		}
	}

	return utils.SendSuccess(c, "excuse reviewed", response)
}

func (h *ExcuseHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	filter := repository.ExcuseFilter{
		StudentID: strings.TrimSpace(c.Query("student_id")),
		Date:      strings.TrimSpace(c.Query("date")),
		Status:    models.ExcuseStatus(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
	}

	response, err := h.service.List(c.Context(), schoolID, filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list excuses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list excuses")
	}

	return utils.SendSuccess(c, "excuses", response)
}
