// Package aggregate folds raw attendance, excuse and behavior rows into the
// derived view models shown on dashboards. Every function is pure: inputs
// are treated as read-only snapshots, empty input yields zero values rather
// than errors, and identical input always produces identical output.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// Entry is one student's status row inside a daily sheet.
type Entry struct {
	StudentID   string
	StudentName string
	Status      models.AttendanceStatus
}

// FullSheet is a daily class sheet carrying an explicit row per student,
// including PRESENT rows. School-wide admin statistics consume this shape.
type FullSheet struct {
	Date      string
	Grade     string
	ClassName string
	Entries   []Entry
}

// SparseSheet is a daily class sheet carrying only ABSENT and LATE rows.
// Students without a row are implicitly present, so present counts must be
// derived from the assigned roster size, never read from the entries.
type SparseSheet struct {
	Date      string
	Grade     string
	ClassName string
	Entries   []Entry
}

// Totals is the global present/absent/late counter set.
type Totals struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Total returns the number of entries the totals account for.
func (t Totals) Total() int {
	return t.Present + t.Absent + t.Late
}

// ClassTotals is the per-class breakdown bucket.
type ClassTotals struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Total   int `json:"total"`
}

// TrendPoint is one day on the absence/lateness trend series.
type TrendPoint struct {
	Date   string `json:"date"`
	Absent int    `json:"absent"`
	Late   int    `json:"late"`
}

// Result is the output of either aggregation path.
type Result struct {
	Totals  Totals                 `json:"totals"`
	ByClass map[string]ClassTotals `json:"by_class"`
	Trend   []TrendPoint           `json:"trend"`
}

// ClassKey builds the display key used for per-class breakdowns.
func ClassKey(grade, className string) string {
	return fmt.Sprintf("%s - %s", grade, className)
}

// AggregateFull walks full sheets once, counting every status explicitly,
// PRESENT included. It must only be fed sheets of the full shape; sparse
// sheets go through AggregateSparse instead.
func AggregateFull(sheets []FullSheet) Result {
	result := Result{ByClass: map[string]ClassTotals{}}
	trend := map[string]*TrendPoint{}

	for _, sheet := range sheets {
		key := ClassKey(sheet.Grade, sheet.ClassName)
		bucket := result.ByClass[key]
		point := trendPoint(trend, sheet.Date)

		for _, entry := range sheet.Entries {
			switch entry.Status {
			case models.AttendanceStatusPresent:
				result.Totals.Present++
				bucket.Present++
			case models.AttendanceStatusAbsent:
				result.Totals.Absent++
				bucket.Absent++
				point.Absent++
			case models.AttendanceStatusLate:
				result.Totals.Late++
				bucket.Late++
				point.Late++
			}
			bucket.Total++
		}

		result.ByClass[key] = bucket
	}

	result.Trend = sortedTrend(trend)
	return result
}

// AggregateSparse walks sparse sheets once and derives present counts by
// subtraction from the assigned roster, clamped at zero. roster maps class
// key (see ClassKey) to the number of students assigned to that class; a
// missing class contributes a roster of zero.
func AggregateSparse(sheets []SparseSheet, roster map[string]int) Result {
	result := Result{ByClass: map[string]ClassTotals{}}
	trend := map[string]*TrendPoint{}

	for _, sheet := range sheets {
		key := ClassKey(sheet.Grade, sheet.ClassName)
		bucket := result.ByClass[key]
		point := trendPoint(trend, sheet.Date)

		for _, entry := range sheet.Entries {
			switch entry.Status {
			case models.AttendanceStatusAbsent:
				result.Totals.Absent++
				bucket.Absent++
				point.Absent++
			case models.AttendanceStatusLate:
				result.Totals.Late++
				bucket.Late++
				point.Late++
			}
		}

		result.ByClass[key] = bucket
	}

	var rosterTotal int
	for key, bucket := range result.ByClass {
		assigned := roster[key]
		bucket.Present = PresentBySubtraction(assigned, bucket.Absent, bucket.Late)
		bucket.Total = bucket.Present + bucket.Absent + bucket.Late
		result.ByClass[key] = bucket
	}
	for _, assigned := range roster {
		rosterTotal += assigned
	}

	result.Totals.Present = PresentBySubtraction(rosterTotal, result.Totals.Absent, result.Totals.Late)
	result.Trend = sortedTrend(trend)
	return result
}

// PresentBySubtraction derives a present count from a roster size and the
// persisted absent/late counts. Anomalous data where absences exceed the
// roster clamps to zero instead of going negative.
func PresentBySubtraction(roster, absent, late int) int {
	present := roster - absent - late
	if present < 0 {
		return 0
	}
	return present
}

// AttendanceRate returns the share of entries that were present, as a
// percentage. Zero totals yield 0 rather than dividing by zero.
func AttendanceRate(t Totals) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.Present) / float64(total) * 100
}

func trendPoint(trend map[string]*TrendPoint, date string) *TrendPoint {
	if point, ok := trend[date]; ok {
		return point
	}
	point := &TrendPoint{Date: date}
	trend[date] = point
	return point
}

func sortedTrend(trend map[string]*TrendPoint) []TrendPoint {
	points := make([]TrendPoint, 0, len(trend))
	for _, point := range trend {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
