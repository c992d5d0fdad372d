package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/madrasah-go-api/internal/utils"
)

// SchoolHeader carries the active school selected by the caller.
const SchoolHeader = "X-School-ID"

const schoolLocalsKey = "school_id"

// RequireSchool resolves the active school from the request header and binds
// it to the request locals. Requests without a valid school are rejected.
func RequireSchool() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(SchoolHeader))
		if raw == "" {
			return utils.SendError(c, fiber.StatusBadRequest, "active school not selected")
		}

		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid school identifier")
		}

		c.Locals(schoolLocalsKey, uint(parsed))
		return c.Next()
	}
}

// SchoolIDFromContext returns the active school bound by RequireSchool, or 0
// when the request carries none.
func SchoolIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals(schoolLocalsKey); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
