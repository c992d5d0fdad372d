package ai

import "context"

// ReportInput carries the aggregated student facts the narrator writes
// about. Numbers are precomputed by the caller; the model only turns them
// into prose and must not invent data of its own.
type ReportInput struct {
	StudentName       string
	Grade             string
	ClassName         string
	PresentDays       int
	UnexcusedAbsences int
	ExcusedAbsences   int
	LateCount         int
	ExitCount         int
	PointsTotal       int
	LatestViolation   string
	LatestObservation string
	Language          string
}

// Narrative is the prose summary returned by the AI provider.
type Narrative struct {
	Content string                 `json:"content"`
	Raw     map[string]interface{} `json:"raw,omitempty"`
}

// Narrator describes an AI model capable of writing student report prose.
type Narrator interface {
	Narrate(ctx context.Context, input ReportInput) (Narrative, error)
}
