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

// ExitHandler exposes exit permission routes.
type ExitHandler struct {
	service service.ExitService
	logger  zerolog.Logger
}

// NewExitHandler constructs an exit permission handler.
func NewExitHandler(service service.ExitService, logger zerolog.Logger) *ExitHandler {
	return &ExitHandler{
		service: service,
		logger:  logger.With().Str("component", "exit_handler").Logger(),
	}
}

// Register wires exit permission routes.
func (h *ExitHandler) Register(router fiber.Router) {
	router.Post("", h.issue)
	router.Get("", h.list)
	router.Patch("/:id/complete", h.complete)
}

func (h *ExitHandler) issue(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.ExitPermissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Issue(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to issue exit permission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to issue exit permission")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exit permission issued", response)
}

func (h *ExitHandler) complete(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Complete(c.Context(), schoolID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExitNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExitCompleted):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrExitExpired):
			return utils.SendError(c, fiber.StatusGone, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to complete exit permission")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to complete exit permission")
		}
	}

	return utils.SendSuccess(c, "exit permission completed", response)
}

func (h *ExitHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.List(c.Context(), schoolID, strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list exit permissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exit permissions")
	}

	return utils.SendSuccess(c, "exit permissions", response)
}
