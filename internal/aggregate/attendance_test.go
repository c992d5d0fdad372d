package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

func TestAggregateFullTotalsSumToEntriesProcessed(t *testing.T) {
	sheets := []FullSheet{
		{
			Date: "2024-05-01", Grade: "10", ClassName: "A",
			Entries: []Entry{
				{StudentID: "s1", Status: models.AttendanceStatusPresent},
				{StudentID: "s2", Status: models.AttendanceStatusAbsent},
				{StudentID: "s3", Status: models.AttendanceStatusLate},
			},
		},
		{
			Date: "2024-05-02", Grade: "10", ClassName: "B",
			Entries: []Entry{
				{StudentID: "s4", Status: models.AttendanceStatusPresent},
				{StudentID: "s5", Status: models.AttendanceStatusPresent},
				{StudentID: "s6", Status: models.AttendanceStatusAbsent},
			},
		},
	}

	result := AggregateFull(sheets)

	require.Equal(t, 3, result.Totals.Present)
	require.Equal(t, 2, result.Totals.Absent)
	require.Equal(t, 1, result.Totals.Late)
	require.Equal(t, 6, result.Totals.Total())

	var classTotal int
	for _, bucket := range result.ByClass {
		require.Equal(t, bucket.Present+bucket.Absent+bucket.Late, bucket.Total)
		classTotal += bucket.Total
	}
	require.Equal(t, result.Totals.Total(), classTotal)
}

func TestAggregateFullEmptyInputYieldsZeroes(t *testing.T) {
	result := AggregateFull(nil)
	require.Equal(t, Totals{}, result.Totals)
	require.Empty(t, result.ByClass)
	require.Empty(t, result.Trend)
	require.Zero(t, AttendanceRate(result.Totals))
}

func TestAggregateSparseDerivesPresentBySubtraction(t *testing.T) {
	roster := map[string]int{ClassKey("10", "A"): 25}
	sheets := []SparseSheet{
		{
			Date: "2024-05-01", Grade: "10", ClassName: "A",
			Entries: []Entry{
				{StudentID: "s1", Status: models.AttendanceStatusAbsent},
				{StudentID: "s2", Status: models.AttendanceStatusAbsent},
				{StudentID: "s3", Status: models.AttendanceStatusLate},
			},
		},
	}

	result := AggregateSparse(sheets, roster)

	require.Equal(t, 22, result.Totals.Present)
	require.Equal(t, 2, result.Totals.Absent)
	require.Equal(t, 1, result.Totals.Late)

	bucket := result.ByClass[ClassKey("10", "A")]
	require.Equal(t, 22, bucket.Present)
	require.Equal(t, 25, bucket.Total)
}

func TestPresentBySubtractionNeverNegative(t *testing.T) {
	require.Equal(t, 0, PresentBySubtraction(5, 4, 3))
	require.Equal(t, 0, PresentBySubtraction(0, 0, 0))
	require.Equal(t, 2, PresentBySubtraction(5, 2, 1))
}

func TestAggregateSparseClampsAnomalousRoster(t *testing.T) {
	sheets := []SparseSheet{
		{
			Date: "2024-05-01", Grade: "10", ClassName: "A",
			Entries: []Entry{
				{StudentID: "s1", Status: models.AttendanceStatusAbsent},
				{StudentID: "s2", Status: models.AttendanceStatusAbsent},
			},
		},
	}

	// Roster smaller than the recorded absences: bad data, not a panic.
	result := AggregateSparse(sheets, map[string]int{ClassKey("10", "A"): 1})
	require.Equal(t, 0, result.Totals.Present)
	require.GreaterOrEqual(t, result.ByClass[ClassKey("10", "A")].Present, 0)
}

func TestTrendOrderedByDateAscending(t *testing.T) {
	sheets := []FullSheet{
		{Date: "2024-05-03", Grade: "10", ClassName: "A", Entries: []Entry{{StudentID: "s1", Status: models.AttendanceStatusAbsent}}},
		{Date: "2024-05-01", Grade: "10", ClassName: "A", Entries: []Entry{{StudentID: "s1", Status: models.AttendanceStatusLate}}},
		{Date: "2024-05-02", Grade: "10", ClassName: "A", Entries: []Entry{{StudentID: "s1", Status: models.AttendanceStatusAbsent}}},
	}

	result := AggregateFull(sheets)

	require.Len(t, result.Trend, 3)
	require.Equal(t, "2024-05-01", result.Trend[0].Date)
	require.Equal(t, "2024-05-02", result.Trend[1].Date)
	require.Equal(t, "2024-05-03", result.Trend[2].Date)
	require.Equal(t, 1, result.Trend[0].Late)
	require.Equal(t, 1, result.Trend[1].Absent)
}

func TestAttendanceRateGuardsDivideByZero(t *testing.T) {
	require.Zero(t, AttendanceRate(Totals{}))
	require.InDelta(t, 50.0, AttendanceRate(Totals{Present: 1, Absent: 1}), 0.01)
}
