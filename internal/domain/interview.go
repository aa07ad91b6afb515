package domain

import (
	"time"

	"hireflow-backend/internal/apperr"
)

type InterviewStatus string

const (
	InterviewStatusPendingConfirmation          InterviewStatus = "PENDING_CONFIRMATION"
	InterviewStatusPendingCandidateConfirmation InterviewStatus = "PENDING_CANDIDATE_CONFIRMATION"
	InterviewStatusConfirmed                    InterviewStatus = "CONFIRMED"
	InterviewStatusCandidateRequestedReschedule InterviewStatus = "CANDIDATE_REQUESTED_RESCHEDULE"
	InterviewStatusPendingAdminApproval         InterviewStatus = "PENDING_ADMIN_APPROVAL"
	InterviewStatusCancelled                    InterviewStatus = "CANCELLED"
)

// AllInterviewStatuses lists every status in declaration order.
var AllInterviewStatuses = []InterviewStatus{
	InterviewStatusPendingConfirmation,
	InterviewStatusPendingCandidateConfirmation,
	InterviewStatusConfirmed,
	InterviewStatusCandidateRequestedReschedule,
	InterviewStatusPendingAdminApproval,
	InterviewStatusCancelled,
}

func (s InterviewStatus) Valid() bool {
	for _, st := range AllInterviewStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s InterviewStatus) Terminal() bool {
	return s == InterviewStatusConfirmed || s == InterviewStatusCancelled
}

// ResponsibleToken grants the Responsible's actions on one interview.
type ResponsibleToken string

// CandidateToken grants the Candidate's actions on one interview.
type CandidateToken string

func (t ResponsibleToken) String() string { return string(t) }
func (t CandidateToken) String() string   { return string(t) }

// ResponsibleProposal is the Responsible's counter-proposal awaiting admin arbitration.
type ResponsibleProposal struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

// CandidateReschedule is the Candidate's reschedule request awaiting staff resolution.
type CandidateReschedule struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// Interview is the aggregate coordinated between Admin, Responsible and Candidate.
// Date fields hold calendar dates (YYYY-MM-DD); time fields are opaque strings.
type Interview struct {
	ID            string `json:"id"`
	CandidatureID string `json:"candidature_id"`
	JobOfferID    string `json:"job_offer_id"`

	CandidateEmail    string `json:"candidate_email"`
	CandidateName     string `json:"candidate_name"`
	AssignedUserID    string `json:"assigned_user_id"`
	AssignedUserEmail string `json:"assigned_user_email"`

	ProposedDate  string `json:"proposed_date"`
	ProposedTime  string `json:"proposed_time"`
	ConfirmedDate string `json:"confirmed_date,omitempty"`
	ConfirmedTime string `json:"confirmed_time,omitempty"`

	ResponsibleProposal *ResponsibleProposal `json:"responsible_proposal,omitempty"`
	CandidateReschedule *CandidateReschedule `json:"candidate_reschedule,omitempty"`

	ConfirmationToken ResponsibleToken `json:"confirmation_token"`
	CandidateToken    CandidateToken   `json:"candidate_token,omitempty"`

	Status InterviewStatus `json:"status"`

	AdminRejectionReason string `json:"admin_rejection_reason,omitempty"`
	CancellationReason   string `json:"cancellation_reason,omitempty"`
	CreatedBy            string `json:"created_by,omitempty"`

	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`
	ModifiedAt            *time.Time `json:"modified_at,omitempty"`
	CandidateConfirmedAt  *time.Time `json:"candidate_confirmed_at,omitempty"`
	CandidateRescheduleAt *time.Time `json:"candidate_reschedule_at,omitempty"`
	AdminApprovedAt       *time.Time `json:"admin_approved_at,omitempty"`
	AdminRejectedAt       *time.Time `json:"admin_rejected_at,omitempty"`
	CancelledAt           *time.Time `json:"cancelled_at,omitempty"`
}

// InterviewWithJob is the projection returned to callers: the interview plus
// the denormalized job title.
type InterviewWithJob struct {
	*Interview
	JobTitle string `json:"job_title"`
}

// Clone returns a deep copy so a transition can be prepared without touching the original.
func (iv *Interview) Clone() *Interview {
	c := *iv
	if iv.ResponsibleProposal != nil {
		p := *iv.ResponsibleProposal
		c.ResponsibleProposal = &p
	}
	if iv.CandidateReschedule != nil {
		r := *iv.CandidateReschedule
		c.CandidateReschedule = &r
	}
	for _, pp := range []**time.Time{&c.ConfirmedAt, &c.ModifiedAt, &c.CandidateConfirmedAt, &c.CandidateRescheduleAt, &c.AdminApprovedAt, &c.AdminRejectedAt, &c.CancelledAt} {
		if *pp != nil {
			t := **pp
			*pp = &t
		}
	}
	return &c
}

// EffectiveDate is the confirmed date when one exists, the proposed date otherwise.
func (iv *Interview) EffectiveDate() (string, string) {
	if iv.ConfirmedDate != "" {
		return iv.ConfirmedDate, iv.ConfirmedTime
	}
	return iv.ProposedDate, iv.ProposedTime
}

// Validate checks the staging-slot invariant: at most one slot is populated,
// and only while its governing status holds.
func (iv *Interview) Validate() error {
	if !iv.Status.Valid() {
		return apperr.Validation("unknown interview status %q", iv.Status)
	}
	if iv.ResponsibleProposal != nil && iv.Status != InterviewStatusPendingAdminApproval {
		return apperr.Validation("responsible proposal staged while status is %s", iv.Status)
	}
	if iv.CandidateReschedule != nil && iv.Status != InterviewStatusCandidateRequestedReschedule {
		return apperr.Validation("candidate reschedule staged while status is %s", iv.Status)
	}
	if iv.Status == InterviewStatusPendingAdminApproval && iv.ResponsibleProposal == nil {
		return apperr.Validation("status %s requires a responsible proposal", iv.Status)
	}
	if iv.Status == InterviewStatusCandidateRequestedReschedule && iv.CandidateReschedule == nil {
		return apperr.Validation("status %s requires a candidate reschedule", iv.Status)
	}
	if iv.ConfirmationToken == "" {
		return apperr.Validation("interview has no confirmation token")
	}
	if iv.CandidateToken != "" && string(iv.CandidateToken) == string(iv.ConfirmationToken) {
		return apperr.Validation("candidate and responsible tokens must differ")
	}
	return nil
}

// ParseDate validates a calendar date in YYYY-MM-DD form.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

const DateLayout = "2006-01-02"
