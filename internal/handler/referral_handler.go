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

// ReferralHandler exposes the counselor referral workflow routes.
type ReferralHandler struct {
	service service.ReferralService
	logger  zerolog.Logger
}

// NewReferralHandler constructs a referral handler.
func NewReferralHandler(service service.ReferralService, logger zerolog.Logger) *ReferralHandler {
	return &ReferralHandler{
		service: service,
		logger:  logger.With().Str("component", "referral_handler").Logger(),
	}
}

// Register wires referral routes.
func (h *ReferralHandler) Register(router fiber.Router) {
	router.Post("", h.open)
	router.Get("", h.list)
	router.Patch("/:id/accept", h.accept)
	router.Patch("/:id/return", h.returnToDeputy)
	router.Patch("/:id/resolve", h.resolve)
}

func (h *ReferralHandler) open(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	var payload dto.ReferralCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Open(c.Context(), schoolID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to open referral")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open referral")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "referral opened", response)
}

func (h *ReferralHandler) accept(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.service.Accept(c.Context(), schoolID, id)
	if err != nil {
		return h.mapReferralError(c, err, "failed to accept referral")
	}

	return utils.SendSuccess(c, "referral accepted", response)
}

func (h *ReferralHandler) returnToDeputy(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReferralReturnRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Return(c.Context(), schoolID, id, payload)
	if err != nil {
		return h.mapReferralError(c, err, "failed to return referral")
	}

	return utils.SendSuccess(c, "referral returned to deputy", response)
}

func (h *ReferralHandler) resolve(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReferralResolveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Resolve(c.Context(), schoolID, id, payload)
	if err != nil {
		return h.mapReferralError(c, err, "failed to resolve referral")
	}

	return utils.SendSuccess(c, "referral resolved", response)
}

func (h *ReferralHandler) list(c *fiber.Ctx) error {
	schoolID := middleware.SchoolIDFromContext(c)

	status := models.ReferralStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))

	response, err := h.service.List(c.Context(), schoolID, status)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list referrals")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list referrals")
	}

	return utils.SendSuccess(c, "referrals", response)
}

func (h *ReferralHandler) mapReferralError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrReferralNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReferralTransition):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
