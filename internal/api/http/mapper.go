package http

import (
	"time"

	"hireflow-backend/internal/domain"
)

// InterviewView is the wire projection of an interview. Token fields are
// filled only for admin callers.
type InterviewView struct {
	ID            string `json:"id"`
	CandidatureID string `json:"candidatureId"`
	JobOfferID    string `json:"jobOfferId"`
	JobTitle      string `json:"jobTitle"`

	CandidateName     string `json:"candidateName"`
	CandidateEmail    string `json:"candidateEmail,omitempty"`
	AssignedUserID    string `json:"assignedUserId,omitempty"`
	AssignedUserEmail string `json:"assignedUserEmail,omitempty"`

	Status        domain.InterviewStatus `json:"status"`
	ProposedDate  string                 `json:"proposedDate"`
	ProposedTime  string                 `json:"proposedTime"`
	ConfirmedDate string                 `json:"confirmedDate,omitempty"`
	ConfirmedTime string                 `json:"confirmedTime,omitempty"`

	ResponsableProposedDate      string `json:"responsableProposedDate,omitempty"`
	ResponsableProposedTime      string `json:"responsableProposedTime,omitempty"`
	ResponsableModificationNotes string `json:"responsableModificationNotes,omitempty"`

	CandidateProposedDate     string `json:"candidateProposedDate,omitempty"`
	CandidateProposedTime     string `json:"candidateProposedTime,omitempty"`
	CandidateRescheduleReason string `json:"candidateRescheduleReason,omitempty"`

	AdminRejectionReason string `json:"adminRejectionReason,omitempty"`
	CancellationReason   string `json:"cancellationReason,omitempty"`

	ConfirmationToken string `json:"confirmationToken,omitempty"`
	CandidateToken    string `json:"candidateToken,omitempty"`

	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
	ModifiedAt            *time.Time `json:"modifiedAt,omitempty"`
	CandidateConfirmedAt  *time.Time `json:"candidateConfirmedAt,omitempty"`
	CandidateRescheduleAt *time.Time `json:"candidateRescheduleAt,omitempty"`
	AdminApprovedAt       *time.Time `json:"adminApprovedAt,omitempty"`
	AdminRejectedAt       *time.Time `json:"adminRejectedAt,omitempty"`
	CancelledAt           *time.Time `json:"cancelledAt,omitempty"`
}

// MapInterviewForAdmin includes both capability tokens.
func MapInterviewForAdmin(iv *domain.InterviewWithJob) *InterviewView {
	v := mapInterview(iv)
	v.ConfirmationToken = string(iv.ConfirmationToken)
	v.CandidateToken = string(iv.CandidateToken)
	return v
}

// MapInterviewForStaff keeps contact details but never the capability tokens.
func MapInterviewForStaff(iv *domain.InterviewWithJob) *InterviewView {
	return mapInterview(iv)
}

// MapInterviewForLink is the projection served to capability-link holders.
// Neither token is echoed back, and contact details of the other party are
// left out.
func MapInterviewForLink(iv *domain.InterviewWithJob) *InterviewView {
	v := mapInterview(iv)
	v.CandidateEmail = ""
	v.AssignedUserID = ""
	v.AssignedUserEmail = ""
	return v
}

func MapInterviews(list []domain.InterviewWithJob, mapOne func(*domain.InterviewWithJob) *InterviewView) []*InterviewView {
	out := make([]*InterviewView, 0, len(list))
	for i := range list {
		out = append(out, mapOne(&list[i]))
	}
	return out
}

func mapInterview(iv *domain.InterviewWithJob) *InterviewView {
	v := &InterviewView{
		ID:                    iv.ID,
		CandidatureID:         iv.CandidatureID,
		JobOfferID:            iv.JobOfferID,
		JobTitle:              iv.JobTitle,
		CandidateName:         iv.CandidateName,
		CandidateEmail:        iv.CandidateEmail,
		AssignedUserID:        iv.AssignedUserID,
		AssignedUserEmail:     iv.AssignedUserEmail,
		Status:                iv.Status,
		ProposedDate:          iv.ProposedDate,
		ProposedTime:          iv.ProposedTime,
		ConfirmedDate:         iv.ConfirmedDate,
		ConfirmedTime:         iv.ConfirmedTime,
		AdminRejectionReason:  iv.AdminRejectionReason,
		CancellationReason:    iv.CancellationReason,
		CreatedAt:             iv.CreatedAt,
		UpdatedAt:             iv.UpdatedAt,
		ConfirmedAt:           iv.ConfirmedAt,
		ModifiedAt:            iv.ModifiedAt,
		CandidateConfirmedAt:  iv.CandidateConfirmedAt,
		CandidateRescheduleAt: iv.CandidateRescheduleAt,
		AdminApprovedAt:       iv.AdminApprovedAt,
		AdminRejectedAt:       iv.AdminRejectedAt,
		CancelledAt:           iv.CancelledAt,
	}
	if p := iv.ResponsibleProposal; p != nil {
		v.ResponsableProposedDate, v.ResponsableProposedTime, v.ResponsableModificationNotes = p.Date, p.Time, p.Notes
	}
	if c := iv.CandidateReschedule; c != nil {
		v.CandidateProposedDate, v.CandidateProposedTime, v.CandidateRescheduleReason = c.Date, c.Time, c.Reason
	}
	return v
}

type NotificationView struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link,omitempty"`
	Metadata  map[string]string       `json:"metadata,omitempty"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

func MapNotification(n domain.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
