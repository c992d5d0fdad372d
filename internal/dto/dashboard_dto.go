package dto

import (
	"github.com/noah-isme/madrasah-go-api/internal/aggregate"
)

// AdminDashboardResponse is the school-wide dashboard view model: global
// totals, per-class breakdown, daily trend and the five top-5 leaderboards.
type AdminDashboardResponse struct {
	Stats             AttendanceStatsResponse `json:"stats"`
	MostAbsent        []aggregate.RankEntry   `json:"most_absent"`
	MostLate          []aggregate.RankEntry   `json:"most_late"`
	MostViolations    []aggregate.RankEntry   `json:"most_violations"`
	MostObservations  []aggregate.RankEntry   `json:"most_observations"`
	FrequentViolation []aggregate.RankEntry   `json:"frequent_violations"`
	AtRiskCount       int                     `json:"at_risk_count"`
	CacheHit          bool                    `json:"cache_hit,omitempty"`
}

// RiskEntryResponse is one row on the at-risk list: a student whose current
// consecutive unexcused absence run reached the threshold and has no live
// excuse on the most recent absence date.
type RiskEntryResponse struct {
	StudentID       string `json:"student_id"`
	StudentName     string `json:"student_name"`
	Grade           string `json:"grade"`
	ClassName       string `json:"class_name"`
	RunLength       int    `json:"run_length"`
	LastAbsenceDate string `json:"last_absence_date"`
	FollowUpStatus  string `json:"follow_up_status,omitempty"`
}

// StudentSummaryResponse is the parent-portal key-metric card set for one
// student.
type StudentSummaryResponse struct {
	StudentID         string               `json:"student_id"`
	StudentName       string               `json:"student_name"`
	PresentDays       int                  `json:"present_days"`
	UnexcusedAbsences int                  `json:"unexcused_absences"`
	ExcusedAbsences   int                  `json:"excused_absences"`
	LateCount         int                  `json:"late_count"`
	ExitCount         int                  `json:"exit_count"`
	PointsTotal       int                  `json:"points_total"`
	LatestViolation   *BehaviorResponse    `json:"latest_violation,omitempty"`
	LatestObservation *ObservationResponse `json:"latest_observation,omitempty"`
}
