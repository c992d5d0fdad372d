package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/models"
	"github.com/noah-isme/madrasah-go-api/internal/repository"
)

// DashboardService composes the school-wide admin dashboard: attendance
// totals, the five leaderboards and the at-risk count, cached per school.
type DashboardService interface {
	Summary(ctx context.Context, schoolID uint) (dto.AdminDashboardResponse, error)
}

type dashboardService struct {
	attendance   AttendanceService
	behaviors    repository.BehaviorRepository
	observations repository.ObservationRepository
	sheets       repository.AttendanceRepository
	risk         RiskService
	cache        *redis.Client
	cacheTTL     time.Duration
	logger       zerolog.Logger
}

// NewDashboardService constructs the dashboard service. cache may be nil;
// every request then recomputes.
func NewDashboardService(
	attendance AttendanceService,
	behaviors repository.BehaviorRepository,
	observations repository.ObservationRepository,
	sheets repository.AttendanceRepository,
	risk RiskService,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		attendance:   attendance,
		behaviors:    behaviors,
		observations: observations,
		sheets:       sheets,
		risk:         risk,
		cache:        cache,
		cacheTTL:     ttl,
		logger:       logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Summary(ctx context.Context, schoolID uint) (dto.AdminDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:summary:%d", schoolID)
	tracer := otel.Tracer("github.com/noah-isme/madrasah-go-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.aggregate")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AdminDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	summary, err := s.build(ctx, schoolID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dashboard_aggregation_failed")
		return dto.AdminDashboardResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *dashboardService) build(ctx context.Context, schoolID uint) (dto.AdminDashboardResponse, error) {
	stats, err := s.attendance.SchoolStats(ctx, schoolID, models.AttendanceFilter{})
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	history, err := s.sheets.SchoolHistory(ctx, schoolID)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	mostAbsent := aggregate.NewLeaderboard()
	mostLate := aggregate.NewLeaderboard()
	for _, row := range history {
		switch row.Status {
		case models.AttendanceStatusAbsent:
			mostAbsent.Add(row.StudentID, row.StudentName, "")
		case models.AttendanceStatusLate:
			mostLate.Add(row.StudentID, row.StudentName, "")
		}
	}

	records, err := s.behaviors.List(ctx, schoolID, "")
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	mostViolations := aggregate.NewLeaderboard()
	frequentViolation := aggregate.NewLeaderboard()
	for _, record := range records {
		mostViolations.Add(record.StudentID, record.StudentName, record.ViolationDegree)
		frequentViolation.Add(record.ViolationName, record.ViolationName, record.ViolationDegree)
	}

	observations, err := s.observations.List(ctx, schoolID, "")
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	mostObservations := aggregate.NewLeaderboard()
	for _, observation := range observations {
		mostObservations.Add(observation.StudentID, observation.StudentID, string(observation.Type))
	}

	atRisk, err := s.risk.AtRiskList(ctx, schoolID)
	if err != nil {
		return dto.AdminDashboardResponse{}, err
	}

	return dto.AdminDashboardResponse{
		Stats:             stats,
		MostAbsent:        mostAbsent.Top(aggregate.DefaultTopK),
		MostLate:          mostLate.Top(aggregate.DefaultTopK),
		MostViolations:    mostViolations.Top(aggregate.DefaultTopK),
		MostObservations:  mostObservations.Top(aggregate.DefaultTopK),
		FrequentViolation: frequentViolation.Top(aggregate.DefaultTopK),
		AtRiskCount:       len(atRisk),
	}, nil
}
