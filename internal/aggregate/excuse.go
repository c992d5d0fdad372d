package aggregate

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// Reconciler joins attendance entries against excuse requests. The lookup is
// two-step: match by student id first, fall back to matching by the
// denormalized student name. The fallback exists because historical excuse
// rows may predate consistent student-id linkage; it is live behavior, not
// dead code, and every fallback hit is logged so the legacy accommodation
// stays visible.
type Reconciler struct {
	logger zerolog.Logger
}

// NewReconciler builds a reconciler with the given logger.
func NewReconciler(logger zerolog.Logger) *Reconciler {
	return &Reconciler{logger: logger.With().Str("component", "excuse_reconciler").Logger()}
}

// Resolve returns the excuse status filed for the given student and date, or
// nil when no request matches by either key. Requests are scanned in input
// order and the first match wins, so an id match always beats a later
// name-only match.
func (r *Reconciler) Resolve(studentID, studentName, date string, requests []models.ExcuseRequest) *models.ExcuseStatus {
	if studentID != "" {
		for _, request := range requests {
			if request.StudentID == studentID && request.Date == date {
				status := request.Status
				return &status
			}
		}
	}

	if studentName != "" {
		for _, request := range requests {
			if request.StudentName == studentName && request.Date == date {
				r.logger.Warn().
					Str("student_name", studentName).
					Str("date", date).
					Msg("excuse request matched by name fallback")
				status := request.Status
				return &status
			}
		}
	}

	return nil
}

// Unexcused reports whether an absence counts as unexcused for summary
// statistics: anything short of an approved excuse, including no request at
// all.
func Unexcused(status *models.ExcuseStatus) bool {
	return status == nil || *status != models.ExcuseStatusApproved
}

// HasLiveExcuse reports whether a non-rejected excuse request exists, the
// predicate used to suppress a student from the at-risk list. This is a
// deliberately looser test than the inverse of Unexcused: a PENDING request
// keeps a student off the warning-letter list while still counting the
// absence as unexcused in statistics. The two predicates must not be
// collapsed.
func HasLiveExcuse(status *models.ExcuseStatus) bool {
	return status != nil && *status != models.ExcuseStatusRejected
}
