package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// AppointmentHandler exposes parent appointment booking routes.
type AppointmentHandler struct {
	service service.AppointmentService
	logger  zerolog.Logger
}

// NewAppointmentHandler constructs an appointment handler.
func NewAppointmentHandler(service service.AppointmentService, logger zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		logger:  logger.With().Str("component", "appointment_handler").Logger(),
	}
}

// Register wires appointment routes.
func (h *AppointmentHandler) Register(router fiber.Router) {
	router.Post("/slots", h.publishSlot)
	router.Get("/slots", h.listSlots)
	router.Post("", h.book)
	router.Get("", h.list)
	router.Patch("/:id/cancel", h.cancel)
	router.Patch("/:id/complete", h.complete)
}

func (h *AppointmentHandler) publishSlot(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.SlotCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.PublishSlot(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to publish appointment slot")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to publish appointment slot")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "appointment slot published", response)
}

func (h *AppointmentHandler) listSlots(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.ListSlots(c.Context(), schoolID, strings.TrimSpace(c.Query("date")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list appointment slots")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list appointment slots")
	}

	return utils.SendSuccess(c, "appointment slots", response)
}

func (h *AppointmentHandler) book(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.AppointmentBookRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Book(c.Context(), schoolID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSlotFull):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrActiveAppointmentExists):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to book appointment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to book appointment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "appointment booked", response)
}

func (h *AppointmentHandler) cancel(c *fiber.Ctx) error {
	return h.close(c, h.service.Cancel, "appointment cancelled")
}

func (h *AppointmentHandler) complete(c *fiber.Ctx) error {
	return h.close(c, h.service.Complete, "appointment completed")
}

func (h *AppointmentHandler) close(c *fiber.Ctx, op func(ctx context.Context, schoolID, id uint) (dto.AppointmentResponse, error), message string) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := op(c.Context(), schoolID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAppointmentClosed):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to close appointment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to close appointment")
		}
	}

	return utils.SendSuccess(c, message, response)
}

func (h *AppointmentHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.List(c.Context(), schoolID, strings.TrimSpace(c.Query("parent_civil_id")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list appointments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list appointments")
	}

	return utils.SendSuccess(c, "appointments", response)
}
