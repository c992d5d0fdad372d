package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/madrasah-go-api/internal/config"
	"github.com/noah-isme/madrasah-go-api/internal/handler"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AttendanceHandler   *handler.AttendanceHandler
	ExcuseHandler       *handler.ExcuseHandler
	BehaviorHandler     *handler.BehaviorHandler
	ObservationHandler  *handler.ObservationHandler
	ReferralHandler     *handler.ReferralHandler
	RiskHandler         *handler.RiskHandler
	ExitHandler         *handler.ExitHandler
	AppointmentHandler  *handler.AppointmentHandler
	DashboardHandler    *handler.DashboardHandler
	ReportHandler       *handler.ReportHandler
	StudentHandler      *handler.StudentHandler
	SchoolHandler       *handler.SchoolHandler
	NotificationHandler *handler.NotificationHandler
	UploadHandler       *handler.UploadHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.SchoolHandler != nil {
		deps.SchoolHandler.Register(api.Group("/schools", jwtMiddleware))
	}

	school := api.Group("", jwtMiddleware, middleware.RequireSchool())

	staff := middleware.RequireRole("admin", "staff", "deputy", "counselor")
	deputies := middleware.RequireRole("admin", "deputy")
	counselors := middleware.RequireRole("admin", "counselor")
	parents := middleware.RequireRole("admin", "staff", "deputy", "counselor", "parent")

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(school.Group("/attendance", staff))
	}
	if deps.ExcuseHandler != nil {
		deps.ExcuseHandler.Register(school.Group("/excuses", parents))
	}
	if deps.BehaviorHandler != nil {
		deps.BehaviorHandler.Register(school.Group("/behaviors", staff))
	}
	if deps.ObservationHandler != nil {
		deps.ObservationHandler.Register(school.Group("/observations", parents))
	}
	if deps.ReferralHandler != nil {
		deps.ReferralHandler.Register(school.Group("/referrals", counselors))
	}
	if deps.RiskHandler != nil {
		deps.RiskHandler.Register(school.Group("/risk", deputies))
	}
	if deps.ExitHandler != nil {
		deps.ExitHandler.Register(school.Group("/exit-permissions", staff))
	}
	if deps.AppointmentHandler != nil {
		deps.AppointmentHandler.Register(school.Group("/appointments", parents))
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(school.Group("/dashboard", staff))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(school.Group("/reports", staff))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(school.Group("/students", staff))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(school.Group("/notifications", parents))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(school.Group("/uploads", parents))
	}
}
