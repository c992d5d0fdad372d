package models

import "time"

// ReferralStatus captures the workflow state of a counseling referral.
type ReferralStatus string

const (
	ReferralStatusPending          ReferralStatus = "pending"
	ReferralStatusInProgress       ReferralStatus = "in_progress"
	ReferralStatusReturnedToDeputy ReferralStatus = "returned_to_deputy"
	ReferralStatusResolved         ReferralStatus = "resolved"
)

// Referral routes a student case from a deputy to a counselor and back.
// The workflow is advisory only; nothing prevents two staff members from
// racing to transition the same referral.
type Referral struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SchoolID      uint           `gorm:"index;not null" json:"school_id"`
	StudentID     string         `gorm:"size:64;index;not null" json:"student_id"`
	StudentName   string         `gorm:"size:255" json:"student_name"`
	ReferralDate  string         `gorm:"size:10;not null" json:"referral_date"`
	Reason        string         `gorm:"type:text" json:"reason"`
	Status        ReferralStatus `gorm:"size:32;not null;default:pending" json:"status"`
	Outcome       string         `gorm:"type:text" json:"outcome"`
	FinalDecision string         `gorm:"type:text" json:"final_decision"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CanTransition reports whether a referral may move from its current status
// to the target. The only skip allowed is the deputy closing a case directly
// from in_progress without waiting for it to be returned.
func (r Referral) CanTransition(to ReferralStatus) bool {
	switch r.Status {
	case ReferralStatusPending:
		return to == ReferralStatusInProgress
	case ReferralStatusInProgress:
		return to == ReferralStatusReturnedToDeputy || to == ReferralStatusResolved
	case ReferralStatusReturnedToDeputy:
		return to == ReferralStatusResolved
	default:
		return false
	}
}
