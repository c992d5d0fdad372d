package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/config"
	"github.com/noah-isme/madrasah-go-api/internal/database"
	"github.com/noah-isme/madrasah-go-api/internal/handler"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/observability"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
	"github.com/noah-isme/madrasah-go-api/internal/router"
	"github.com/noah-isme/madrasah-go-api/internal/service"
	"github.com/noah-isme/madrasah-go-api/pkg/ai"
	cloud "github.com/noah-isme/madrasah-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.Student{},
		&models.AttendanceSheet{},
		&models.AttendanceEntry{},
		&models.ExcuseRequest{},
		&models.AbsenceFollowUp{},
		&models.BehaviorRecord{},
		&models.StudentObservation{},
		&models.Referral{},
		&models.ExitPermission{},
		&models.AppointmentSlot{},
		&models.Appointment{},
		&models.GeneratedReport{},
		&models.Notification{},
		&models.Attachment{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	storage, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	narrator := buildNarrator(cfg, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	excuseRepo := repository.NewExcuseRepository(db)
	followUpRepo := repository.NewFollowUpRepository(db)
	behaviorRepo := repository.NewBehaviorRepository(db)
	observationRepo := repository.NewObservationRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	exitRepo := repository.NewExitPermissionRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, "madrasah:notifications", natsConn, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, excuseRepo, studentRepo, validate, logger)
	excuseService := service.NewExcuseService(excuseRepo, notificationService, validate, logger)
	behaviorService := service.NewBehaviorService(behaviorRepo, notificationService, validate, logger)
	observationService := service.NewObservationService(observationRepo, notificationService, validate, logger)
	referralService := service.NewReferralService(referralRepo, notificationService, validate, logger)
	riskService := service.NewRiskService(attendanceRepo, excuseRepo, studentRepo, followUpRepo, cfg.RiskThreshold, logger)
	exitService := service.NewExitService(exitRepo, validate, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, notificationService, validate, logger)
	dashboardService := service.NewDashboardService(attendanceService, behaviorRepo, observationRepo, attendanceRepo, riskService, redisClient, cfg.DashboardCacheTTL, logger)
	summaryService := service.NewStudentSummaryService(studentRepo, attendanceRepo, excuseRepo, behaviorRepo, observationRepo, exitRepo, logger)
	reportService := service.NewReportService(summaryService, studentRepo, reportRepo, narrator, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, logger)
	uploadService := service.NewUploadService(storage, attachmentRepo, cfg.UploadMaxSizeMB, logger)
	schoolService := service.NewSchoolService(schoolRepo, logger)

	appCtx, stopConsumers := context.WithCancel(context.Background())
	defer stopConsumers()
	notificationService.Start(appCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	app.Get("/metrics", observability.MetricsHandler())

	router.Register(app, cfg, router.Dependencies{
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceService, logger),
		ExcuseHandler:       handler.NewExcuseHandler(excuseService, logger),
		BehaviorHandler:     handler.NewBehaviorHandler(behaviorService, logger),
		ObservationHandler:  handler.NewObservationHandler(observationService, logger),
		ReferralHandler:     handler.NewReferralHandler(referralService, logger),
		RiskHandler:         handler.NewRiskHandler(riskService, logger),
		ExitHandler:         handler.NewExitHandler(exitService, logger),
		AppointmentHandler:  handler.NewAppointmentHandler(appointmentService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, summaryService, logger),
		ReportHandler:       handler.NewReportHandler(reportService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		SchoolHandler:       handler.NewSchoolHandler(schoolService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, 30*time.Second),
		UploadHandler:       handler.NewUploadHandler(uploadService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildNarrator picks the configured AI provider. A missing key is not fatal:
// reports fall back to the static narrative text.
func buildNarrator(cfg config.Config, logger zerolog.Logger) ai.Narrator {
	switch cfg.AIProvider {
	case "anthropic":
		narrator, err := ai.NewAnthropicNarrator(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.AIModel})
		if err != nil {
			logger.Warn().Err(err).Msg("anthropic narrator unavailable, reports will use fallback text")
			return nil
		}
		return narrator
	default:
		narrator, err := ai.NewOpenAINarrator(ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.AIModel, Logger: logger})
		if err != nil {
			logger.Warn().Err(err).Msg("openai narrator unavailable, reports will use fallback text")
			return nil
		}
		return narrator
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
