package aggregate

import (
	"sort"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// DefaultRiskThreshold is the consecutive unexcused absence count at which a
// student enters the at-risk list.
const DefaultRiskThreshold = 3

// HistoryEntry is one recorded school day in a student's attendance history.
type HistoryEntry struct {
	Date   string
	Status models.AttendanceStatus
}

// Run describes the streak of consecutive absences ending at the most recent
// history entry. Consecutive means consecutive school-recorded days, not
// consecutive calendar days: days with no record at all do not break a run,
// only an interleaved PRESENT or LATE entry does.
type Run struct {
	Length          int
	LastAbsenceDate string
}

// SortHistory orders entries by date ascending. Dates are plain YYYY-MM-DD
// strings, so lexical order is chronological order.
func SortHistory(history []HistoryEntry) []HistoryEntry {
	sorted := append([]HistoryEntry(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	return sorted
}

// CurrentRun walks a chronological history once and returns the absence run
// ending at the latest entry. Any non-absent entry resets the counter, so a
// trailing PRESENT or LATE day yields a zero-length run.
func CurrentRun(history []HistoryEntry) Run {
	var run Run
	for _, entry := range history {
		if entry.Status == models.AttendanceStatusAbsent {
			run.Length++
			run.LastAbsenceDate = entry.Date
		} else {
			run = Run{}
		}
	}
	return run
}

// AtRisk reports whether a run meets the threshold. Threshold values below
// one fall back to the default.
func AtRisk(run Run, threshold int) bool {
	if threshold < 1 {
		threshold = DefaultRiskThreshold
	}
	return run.Length >= threshold
}
