package domain

import "time"

type NotificationType string

const (
	NotificationInterviewScheduled            NotificationType = "INTERVIEW_SCHEDULED"
	NotificationInterviewResponsibleConfirmed NotificationType = "INTERVIEW_RESPONSIBLE_CONFIRMED"
	NotificationInterviewModificationRequest  NotificationType = "INTERVIEW_MODIFICATION_REQUESTED"
	NotificationInterviewCandidateConfirmed   NotificationType = "INTERVIEW_CANDIDATE_CONFIRMED"
	NotificationInterviewRescheduleRequested  NotificationType = "INTERVIEW_RESCHEDULE_REQUESTED"
	NotificationInterviewModificationApproved NotificationType = "INTERVIEW_MODIFICATION_APPROVED"
	NotificationInterviewModificationRejected NotificationType = "INTERVIEW_MODIFICATION_REJECTED"
	NotificationInterviewRescheduleAccepted   NotificationType = "INTERVIEW_RESCHEDULE_ACCEPTED"
	NotificationInterviewRescheduleDeclined   NotificationType = "INTERVIEW_RESCHEDULE_DECLINED"
	NotificationInterviewCancelled            NotificationType = "INTERVIEW_CANCELLED"
)

// Notification is one in-app message stored for one recipient. Broadcasts
// are stored as independent copies, one per recipient.
type Notification struct {
	ID          string            `json:"id"`
	RecipientID string            `json:"recipient_id"`
	Type        NotificationType  `json:"type"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Link        string            `json:"link"`
	Metadata    map[string]string `json:"metadata"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}
