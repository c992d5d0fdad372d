package aggregate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

func TestReconcilerMatchesByIDFirst(t *testing.T) {
	reconciler := NewReconciler(zerolog.Nop())

	requests := []models.ExcuseRequest{
		// Name-only legacy row that would also match.
		{StudentName: "Ahmed Ali", Date: "2024-05-01", Status: models.ExcuseStatusRejected},
		{StudentID: "s1", StudentName: "Ahmed Ali", Date: "2024-05-01", Status: models.ExcuseStatusApproved},
	}

	status := reconciler.Resolve("s1", "Ahmed Ali", "2024-05-01", requests)
	require.NotNil(t, status)
	require.Equal(t, models.ExcuseStatusApproved, *status)
}

func TestReconcilerFallsBackToName(t *testing.T) {
	reconciler := NewReconciler(zerolog.Nop())

	requests := []models.ExcuseRequest{
		{StudentName: "Ahmed Ali", Date: "2024-05-01", Status: models.ExcuseStatusPending},
	}

	status := reconciler.Resolve("s1", "Ahmed Ali", "2024-05-01", requests)
	require.NotNil(t, status)
	require.Equal(t, models.ExcuseStatusPending, *status)
}

func TestReconcilerReturnsNilWhenNoMatch(t *testing.T) {
	reconciler := NewReconciler(zerolog.Nop())

	requests := []models.ExcuseRequest{
		{StudentID: "s2", StudentName: "Other Student", Date: "2024-05-01", Status: models.ExcuseStatusApproved},
		{StudentID: "s1", StudentName: "Ahmed Ali", Date: "2024-05-02", Status: models.ExcuseStatusApproved},
	}

	require.Nil(t, reconciler.Resolve("s1", "Ahmed Ali", "2024-05-01", requests))
}

func TestReconcilerIsIdempotent(t *testing.T) {
	reconciler := NewReconciler(zerolog.Nop())

	requests := []models.ExcuseRequest{
		{StudentID: "s1", StudentName: "Ahmed Ali", Date: "2024-05-01", Status: models.ExcuseStatusPending},
	}

	first := reconciler.Resolve("s1", "Ahmed Ali", "2024-05-01", requests)
	second := reconciler.Resolve("s1", "Ahmed Ali", "2024-05-01", requests)
	require.Equal(t, first, second)
}

func TestUnexcusedAndLiveExcuseAreDistinctPredicates(t *testing.T) {
	pending := models.ExcuseStatusPending
	approved := models.ExcuseStatusApproved
	rejected := models.ExcuseStatusRejected

	// No request at all: unexcused, no live excuse.
	require.True(t, Unexcused(nil))
	require.False(t, HasLiveExcuse(nil))

	// Pending: still unexcused for statistics, but live for risk suppression.
	require.True(t, Unexcused(&pending))
	require.True(t, HasLiveExcuse(&pending))

	require.False(t, Unexcused(&approved))
	require.True(t, HasLiveExcuse(&approved))

	require.True(t, Unexcused(&rejected))
	require.False(t, HasLiveExcuse(&rejected))
}
