package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// AttendanceEntryRequest is one student row inside a sheet submission.
type AttendanceEntryRequest struct {
	StudentID   string `json:"student_id" validate:"omitempty,max=64"`
	StudentName string `json:"student_name" validate:"required,max=255"`
	Status      string `json:"status" validate:"required,oneof=PRESENT ABSENT LATE"`
}

// AttendanceSheetCreateRequest records one class's attendance for a date.
// Teacher flows submit sparse sheets (absent/late rows only); admin imports
// submit full sheets with every student's status.
type AttendanceSheetCreateRequest struct {
	Date      string                   `json:"date" validate:"required,datetime=2006-01-02"`
	Grade     string                   `json:"grade" validate:"required,max=64"`
	ClassName string                   `json:"class_name" validate:"required,max=64"`
	Kind      string                   `json:"kind" validate:"omitempty,oneof=sparse full"`
	Entries   []AttendanceEntryRequest `json:"entries" validate:"dive"`
}

// AttendanceEntryResponse serializes a nested sheet row, including the
// reconciled excuse status (nil when no request was filed).
type AttendanceEntryResponse struct {
	StudentID    string               `json:"student_id"`
	StudentName  string               `json:"student_name"`
	Status       string               `json:"status"`
	ExcuseStatus *models.ExcuseStatus `json:"excuse_status"`
}

// AttendanceSheetResponse serializes a daily sheet.
type AttendanceSheetResponse struct {
	ID        uint                      `json:"id"`
	Date      string                    `json:"date"`
	Grade     string                    `json:"grade"`
	ClassName string                    `json:"class_name"`
	Kind      string                    `json:"kind"`
	Entries   []AttendanceEntryResponse `json:"entries"`
	CreatedAt time.Time                 `json:"created_at"`
}

// DailyReportResponse is the staff daily report for one date.
type DailyReportResponse struct {
	Date        string                    `json:"date"`
	TotalAbsent int                       `json:"total_absent"`
	TotalLate   int                       `json:"total_late"`
	Entries     []AttendanceEntryResponse `json:"entries"`
}

// AttendanceStatsResponse is the aggregated statistics view. Rate is the
// present percentage over all counted entries.
type AttendanceStatsResponse struct {
	Totals  aggregate.Totals                 `json:"totals"`
	ByClass map[string]aggregate.ClassTotals `json:"by_class"`
	Trend   []aggregate.TrendPoint           `json:"trend"`
	Rate    float64                          `json:"rate"`
}

// NewAttendanceStatsResponse converts an aggregation result into a DTO.
func NewAttendanceStatsResponse(result aggregate.Result) AttendanceStatsResponse {
	return AttendanceStatsResponse{
		Totals:  result.Totals,
		ByClass: result.ByClass,
		Trend:   result.Trend,
		Rate:    aggregate.AttendanceRate(result.Totals),
	}
}
