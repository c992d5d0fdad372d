package dto

import (
	"time"

	"github.com/noah-isme/madrasah-go-api/internal/models"
)

// ReferralCreateRequest opens a counseling referral for a student.
type ReferralCreateRequest struct {
	StudentID    string `json:"student_id" validate:"required,max=64"`
	StudentName  string `json:"student_name" validate:"required,max=255"`
	ReferralDate string `json:"referral_date" validate:"required,datetime=2006-01-02"`
	Reason       string `json:"reason" validate:"omitempty,max=2000"`
}

// ReferralReturnRequest is the counselor's hand-back to the deputy. Outcome
// is mandatory; a blank outcome is rejected before any write.
type ReferralReturnRequest struct {
	Outcome string `json:"outcome" validate:"required,min=3"`
}

// ReferralResolveRequest is the deputy's final decision when closing a case.
type ReferralResolveRequest struct {
	FinalDecision string `json:"final_decision" validate:"required,min=3"`
}

// ReferralResponse serializes a referral.
type ReferralResponse struct {
	ID            uint      `json:"id"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	ReferralDate  string    `json:"referral_date"`
	Reason        string    `json:"reason,omitempty"`
	Status        string    `json:"status"`
	Outcome       string    `json:"outcome,omitempty"`
	FinalDecision string    `json:"final_decision,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewReferralResponse converts a referral model into a DTO.
func NewReferralResponse(model models.Referral) ReferralResponse {
	return ReferralResponse{
		ID:            model.ID,
		StudentID:     model.StudentID,
		StudentName:   model.StudentName,
		ReferralDate:  model.ReferralDate,
		Reason:        model.Reason,
		Status:        string(model.Status),
		Outcome:       model.Outcome,
		FinalDecision: model.FinalDecision,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewReferralResponseSlice converts a slice of models into DTOs.
func NewReferralResponseSlice(referrals []models.Referral) []ReferralResponse {
	out := make([]ReferralResponse, 0, len(referrals))
	for _, referral := range referrals {
		out = append(out, NewReferralResponse(referral))
	}
	return out
}
