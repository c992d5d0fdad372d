package handler

import (
	"context"
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

// RiskHandler exposes consecutive-absence risk detection and follow-up routes.
type RiskHandler struct {
	service service.RiskService
	logger  zerolog.Logger
}

// NewRiskHandler constructs a risk handler.
func NewRiskHandler(service service.RiskService, logger zerolog.Logger) *RiskHandler {
	return &RiskHandler{
		service: service,
		logger:  logger.With().Str("component", "risk_handler").Logger(),
	}
}

// Register wires risk routes.
func (h *RiskHandler) Register(router fiber.Router) {
	router.Get("/at-risk", h.atRisk)
	router.Get("/follow-ups", h.listFollowUps)
	router.Post("/follow-ups", h.openFollowUp)
	router.Patch("/follow-ups/:id/letter-sent", h.markLetterSent)
	router.Patch("/follow-ups/:id/resolve", h.resolveFollowUp)
}

func (h *RiskHandler) atRisk(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	response, err := h.service.AtRiskList(c.Context(), schoolID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build at-risk list")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build at-risk list")
	}

	return utils.SendSuccess(c, "students at risk", response)
}

func (h *RiskHandler) openFollowUp(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload struct {
		StudentID string `json:"student_id"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(payload.StudentID) == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student_id is required")
	}

	response, err := h.service.OpenFollowUp(c.Context(), schoolID, payload.StudentID)
	if err != nil {
		h.logger.Error().Err(err).Str("student_id", payload.StudentID).Msg("failed to open follow-up")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open follow-up")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "follow-up opened", response)
}

func (h *RiskHandler) markLetterSent(c *fiber.Ctx) error {
	return h.advanceFollowUp(c, h.service.MarkLetterSent, "follow-up letter recorded")
}

func (h *RiskHandler) resolveFollowUp(c *fiber.Ctx) error {
	return h.advanceFollowUp(c, h.service.ResolveFollowUp, "follow-up resolved")
}

func (h *RiskHandler) advanceFollowUp(c *fiber.Ctx, op func(ctx context.Context, schoolID, id uint) (dto.FollowUpResponse, error), message string) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := op(c.Context(), schoolID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFollowUpNotFound):
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrFollowUpClosed):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to advance follow-up")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to advance follow-up")
		}
	}

	return utils.SendSuccess(c, message, response)
}

func (h *RiskHandler) listFollowUps(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	status := models.FollowUpStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))

	response, err := h.service.ListFollowUps(c.Context(), schoolID, status)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list follow-ups")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list follow-ups")
	}

	return utils.SendSuccess(c, "follow-ups", response)
}
