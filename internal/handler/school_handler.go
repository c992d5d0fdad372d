package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// SchoolHandler exposes the tenant directory used for school selection.
type SchoolHandler struct {
	service service.SchoolService
	logger  zerolog.Logger
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(service service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		logger:  logger.With().Str("component", "school_handler").Logger(),
	}
}

// Register wires school directory routes.
func (h *SchoolHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *SchoolHandler) list(c *fiber.Ctx) error {
	schools, err := h.service.ListActive(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list schools")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list schools")
	}

	return utils.SendSuccess(c, "schools", schools)
}

func (h *SchoolHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	school, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSchoolNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to load school")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load school")
	}

	return utils.SendSuccess(c, "school", school)
}
