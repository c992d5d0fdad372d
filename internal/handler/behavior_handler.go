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

// BehaviorHandler exposes behavior record routes.
type BehaviorHandler struct {
	service service.BehaviorService
	logger  zerolog.Logger
}

// NewBehaviorHandler constructs a behavior handler.
func NewBehaviorHandler(service service.BehaviorService, logger zerolog.Logger) *BehaviorHandler {
	return &BehaviorHandler{
		service: service,
		logger:  logger.With().Str("component", "behavior_handler").Logger(),
	}
}

// Register wires behavior routes.
func (h *BehaviorHandler) Register(router fiber.Router) {
	router.Post("", h.record)
	router.Get("", h.list)
	router.Delete("/:id", h.remove)
}

func (h *BehaviorHandler) record(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.BehaviorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Record(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to record behavior")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record behavior")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "behavior recorded", response)
}

func (h *BehaviorHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.List(c.Context(), schoolID, strings.TrimSpace(c.Query("student_id")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list behavior records")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list behavior records")
	}

	return utils.SendSuccess(c, "behavior records", response)
}

func (h *BehaviorHandler) remove(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), schoolID, id); err != nil {
		if errors.Is(err, service.ErrBehaviorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to delete behavior record")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete behavior record")
	}

	return utils.SendSuccess(c, "behavior record deleted", nil)
}
