package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

func absent(date string) HistoryEntry {
	return HistoryEntry{Date: date, Status: models.AttendanceStatusAbsent}
}

func present(date string) HistoryEntry {
	return HistoryEntry{Date: date, Status: models.AttendanceStatusPresent}
}

func TestCurrentRunCountsConsecutiveAbsences(t *testing.T) {
	run := CurrentRun([]HistoryEntry{
		absent("2024-05-01"),
		absent("2024-05-02"),
		absent("2024-05-05"),
	})

	// Gap days with no record do not break a run; only recorded
	// presence/lateness does.
	require.Equal(t, 3, run.Length)
	require.Equal(t, "2024-05-05", run.LastAbsenceDate)
}

func TestCurrentRunResetsOnInterleavedPresence(t *testing.T) {
	run := CurrentRun([]HistoryEntry{
		absent("2024-05-01"),
		absent("2024-05-02"),
		present("2024-05-03"),
		absent("2024-05-04"),
	})

	require.Equal(t, 1, run.Length)
	require.Equal(t, "2024-05-04", run.LastAbsenceDate)
}

func TestCurrentRunZeroWhenLatestEntryIsPresent(t *testing.T) {
	run := CurrentRun([]HistoryEntry{
		absent("2024-05-01"),
		absent("2024-05-02"),
		present("2024-05-03"),
	})

	require.Zero(t, run.Length)
	require.Empty(t, run.LastAbsenceDate)
}

func TestAtRiskThresholdBoundary(t *testing.T) {
	require.True(t, AtRisk(Run{Length: 3}, DefaultRiskThreshold))
	require.False(t, AtRisk(Run{Length: 2}, DefaultRiskThreshold))
	require.True(t, AtRisk(Run{Length: 4}, 0)) // invalid threshold falls back to default
}

func TestSortHistoryDoesNotMutateInput(t *testing.T) {
	history := []HistoryEntry{absent("2024-05-03"), absent("2024-05-01")}
	sorted := SortHistory(history)

	require.Equal(t, "2024-05-01", sorted[0].Date)
	require.Equal(t, "2024-05-03", history[0].Date)
}
