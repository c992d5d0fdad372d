package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/dto"
	"github.com/noah-isme/madrasah-go-api/internal/handler"
	"github.com/noah-isme/madrasah-go-api/internal/middleware"
	"github.com/noah-isme/madrasah-go-api/internal/service"
)

type stubDashboardService struct {
	response dto.AdminDashboardResponse
}

func (s stubDashboardService) Summary(context.Context, uint) (dto.AdminDashboardResponse, error) {
	return s.response, nil
}

type stubSummaryService struct{}

func (stubSummaryService) Summary(context.Context, uint, string) (dto.StudentSummaryResponse, error) {
	return dto.StudentSummaryResponse{}, service.ErrStudentNotFound
}

func TestDashboardSummaryContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "dashboard_summary.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	summary := dto.AdminDashboardResponse{
		Stats: dto.AttendanceStatsResponse{
			Totals: aggregate.Totals{Present: 180, Absent: 12, Late: 8},
			Rate:   90.0,
		},
		MostAbsent: []aggregate.RankEntry{
			{Key: "S-1001", Label: "Huda Al-Harbi", Detail: "5 - A", Count: 4},
		},
		MostLate: []aggregate.RankEntry{
			{Key: "S-1002", Label: "Omar Al-Shammari", Detail: "6 - B", Count: 3},
		},
		MostViolations: []aggregate.RankEntry{
			{Key: "S-1002", Label: "Omar Al-Shammari", Count: 2},
		},
		MostObservations: []aggregate.RankEntry{
			{Key: "S-1003", Label: "Sara Al-Qahtani", Count: 1},
		},
		FrequentViolation: []aggregate.RankEntry{
			{Key: "uniform", Label: "uniform", Count: 2},
		},
		AtRiskCount: 1,
	}

	dashboardHandler := handler.NewDashboardHandler(stubDashboardService{response: summary}, stubSummaryService{}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/dashboard", middleware.RequireSchool())
	dashboardHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	req.Header.Set(middleware.SchoolHeader, "1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var document interface{}
	require.NoError(t, json.Unmarshal(body, &document))
	require.NoError(t, schema.Validate(document))
}
