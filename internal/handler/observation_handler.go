package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// ObservationHandler exposes counselor observation routes.
type ObservationHandler struct {
	service service.ObservationService
	logger  zerolog.Logger
}

// NewObservationHandler constructs an observation handler.
func NewObservationHandler(service service.ObservationService, logger zerolog.Logger) *ObservationHandler {
	return &ObservationHandler{
		service: service,
		logger:  logger.With().Str("component", "observation_handler").Logger(),
	}
}

// Register wires observation routes.
func (h *ObservationHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Patch("/:id/acknowledge", h.acknowledge)
	router.Delete("/:id", h.remove)
}

func (h *ObservationHandler) create(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.ObservationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Create(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create observation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create observation")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "observation created", response)
}

func (h *ObservationHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.List(c.Context(), schoolID, strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list observations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list observations")
	}

	return utils.SendSuccess(c, "observations", response)
}

func (h *ObservationHandler) acknowledge(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ObservationAcknowledgeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Acknowledge(c.Context(), schoolID, id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrObservationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrObservationAlreadyViewed):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to acknowledge observation")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to acknowledge observation")
		}
	}

	return utils.SendSuccess(c, "observation acknowledged", response)
}

func (h *ObservationHandler) remove(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), schoolID, id); err != nil {
		if errors.Is(err, service.ErrObservationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to delete observation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete observation")
	}

	return utils.SendSuccess(c, "observation deleted", nil)
}
