package domain

import (
	"time"

	"hireflow-backend/internal/apperr"
)

type InterviewAction string

const (
	ActionResponsibleConfirm     InterviewAction = "RESPONSIBLE_CONFIRM"
	ActionResponsibleModify      InterviewAction = "RESPONSIBLE_MODIFY"
	ActionCandidateConfirm       InterviewAction = "CANDIDATE_CONFIRM"
	ActionCandidateReschedule    InterviewAction = "CANDIDATE_RESCHEDULE"
	ActionAdminApprove           InterviewAction = "ADMIN_APPROVE"
	ActionAdminReject            InterviewAction = "ADMIN_REJECT"
	ActionAdminAcceptReschedule  InterviewAction = "ADMIN_ACCEPT_RESCHEDULE"
	ActionAdminDeclineReschedule InterviewAction = "ADMIN_DECLINE_RESCHEDULE"
	ActionCancel                 InterviewAction = "CANCEL"
)

type transitionKey struct {
	from   InterviewStatus
	action InterviewAction
}

// transitions is the complete table of legal moves. Cancel is handled
// separately since it applies to every non-terminal status.
var transitions = map[transitionKey]InterviewStatus{
	{InterviewStatusPendingConfirmation, ActionResponsibleConfirm}:                   InterviewStatusPendingCandidateConfirmation,
	{InterviewStatusPendingConfirmation, ActionResponsibleModify}:                    InterviewStatusPendingAdminApproval,
	{InterviewStatusPendingCandidateConfirmation, ActionCandidateConfirm}:            InterviewStatusConfirmed,
	{InterviewStatusPendingCandidateConfirmation, ActionCandidateReschedule}:         InterviewStatusCandidateRequestedReschedule,
	{InterviewStatusPendingAdminApproval, ActionAdminApprove}:                        InterviewStatusPendingConfirmation,
	{InterviewStatusPendingAdminApproval, ActionAdminReject}:                         InterviewStatusPendingConfirmation,
	{InterviewStatusCandidateRequestedReschedule, ActionAdminAcceptReschedule}:       InterviewStatusPendingConfirmation,
	{InterviewStatusCandidateRequestedReschedule, ActionAdminDeclineReschedule}:      InterviewStatusPendingCandidateConfirmation,
}

// CanTransition returns the target status of action from the given status.
func CanTransition(from InterviewStatus, action InterviewAction) (InterviewStatus, bool) {
	if action == ActionCancel {
		if from.Terminal() || !from.Valid() {
			return "", false
		}
		return InterviewStatusCancelled, true
	}
	to, ok := transitions[transitionKey{from, action}]
	return to, ok
}

func (iv *Interview) guard(action InterviewAction) (InterviewStatus, error) {
	to, ok := CanTransition(iv.Status, action)
	if !ok {
		err := apperr.IllegalTransition("cannot apply %s to interview %s in status %s", action, iv.ID, iv.Status)
		return "", apperr.WithHint(err, hintFor(iv.Status))
	}
	return to, nil
}

func hintFor(status InterviewStatus) string {
	switch status {
	case InterviewStatusConfirmed:
		return "This interview has already been confirmed."
	case InterviewStatusCancelled:
		return "This interview has been cancelled."
	case InterviewStatusPendingAdminApproval:
		return "A date change is awaiting administrator approval."
	case InterviewStatusCandidateRequestedReschedule:
		return "The candidate has requested a new date; the recruitment team will follow up."
	case InterviewStatusPendingCandidateConfirmation:
		return "The date has been confirmed and is awaiting the candidate."
	default:
		return "This link is no longer valid for the interview's current state."
	}
}

// ConfirmByResponsible ratifies a date. The candidate token is minted only
// on the first confirmation and kept for the interview's lifetime.
func (iv *Interview) ConfirmByResponsible(date, tm string, mint func() (CandidateToken, error), now time.Time) error {
	to, err := iv.guard(ActionResponsibleConfirm)
	if err != nil {
		return err
	}
	if iv.CandidateToken == "" {
		tok, err := mint()
		if err != nil {
			return err
		}
		iv.CandidateToken = tok
	}
	iv.ConfirmedDate = date
	iv.ConfirmedTime = tm
	iv.ConfirmedAt = &now
	iv.Status = to
	return iv.touch(now)
}

// ProposeByResponsible stages a counter-proposal for admin arbitration.
func (iv *Interview) ProposeByResponsible(date, tm, notes string, now time.Time) error {
	to, err := iv.guard(ActionResponsibleModify)
	if err != nil {
		return err
	}
	iv.ResponsibleProposal = &ResponsibleProposal{Date: date, Time: tm, Notes: notes}
	iv.ModifiedAt = &now
	iv.Status = to
	return iv.touch(now)
}

func (iv *Interview) ConfirmByCandidate(now time.Time) error {
	to, err := iv.guard(ActionCandidateConfirm)
	if err != nil {
		return err
	}
	iv.CandidateConfirmedAt = &now
	iv.Status = to
	return iv.touch(now)
}

func (iv *Interview) RequestReschedule(date, tm, reason string, now time.Time) error {
	to, err := iv.guard(ActionCandidateReschedule)
	if err != nil {
		return err
	}
	iv.CandidateReschedule = &CandidateReschedule{Date: date, Time: tm, Reason: reason}
	iv.CandidateRescheduleAt = &now
	iv.Status = to
	return iv.touch(now)
}

// ApproveModification promotes the Responsible's staged date to the proposed
// date and sends the interview back for ratification.
func (iv *Interview) ApproveModification(now time.Time) error {
	to, err := iv.guard(ActionAdminApprove)
	if err != nil {
		return err
	}
	iv.ProposedDate = iv.ResponsibleProposal.Date
	iv.ProposedTime = iv.ResponsibleProposal.Time
	iv.ResponsibleProposal = nil
	iv.AdminApprovedAt = &now
	iv.Status = to
	return iv.touch(now)
}

func (iv *Interview) RejectModification(reason string, now time.Time) error {
	to, err := iv.guard(ActionAdminReject)
	if err != nil {
		return err
	}
	iv.ResponsibleProposal = nil
	iv.AdminRejectionReason = reason
	iv.AdminRejectedAt = &now
	iv.Status = to
	return iv.touch(now)
}

// AcceptReschedule adopts the Candidate's date as the new proposal; the
// Responsible must ratify it again with the same confirmation link. The
// previously confirmed date no longer holds and is cleared.
func (iv *Interview) AcceptReschedule(now time.Time) error {
	to, err := iv.guard(ActionAdminAcceptReschedule)
	if err != nil {
		return err
	}
	iv.ProposedDate = iv.CandidateReschedule.Date
	iv.ProposedTime = iv.CandidateReschedule.Time
	iv.ConfirmedDate = ""
	iv.ConfirmedTime = ""
	iv.CandidateReschedule = nil
	iv.AdminApprovedAt = &now
	iv.Status = to
	return iv.touch(now)
}

// DeclineReschedule keeps the confirmed date and asks the Candidate again.
func (iv *Interview) DeclineReschedule(reason string, now time.Time) error {
	to, err := iv.guard(ActionAdminDeclineReschedule)
	if err != nil {
		return err
	}
	iv.CandidateReschedule = nil
	iv.AdminRejectionReason = reason
	iv.AdminRejectedAt = &now
	iv.Status = to
	return iv.touch(now)
}

func (iv *Interview) Cancel(reason string, now time.Time) error {
	to, err := iv.guard(ActionCancel)
	if err != nil {
		return err
	}
	iv.ResponsibleProposal = nil
	iv.CandidateReschedule = nil
	iv.CancellationReason = reason
	iv.CancelledAt = &now
	iv.Status = to
	return iv.touch(now)
}

func (iv *Interview) touch(now time.Time) error {
	iv.UpdatedAt = now
	return iv.Validate()
}
