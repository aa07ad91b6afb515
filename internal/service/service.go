package service

import (
	"context"
	"time"

	"hireflow-backend/internal/domain"
)

// ScheduleInput carries the admin's scheduling request.
type ScheduleInput struct {
	CandidatureID string
	JobOfferID    string
	Date          string
	Time          string
	CreatedBy     string
}

type InterviewService interface {
	Schedule(ctx context.Context, in ScheduleInput) (*domain.InterviewWithJob, error)

	// Responsible link
	GetForResponsible(ctx context.Context, token domain.ResponsibleToken) (*domain.InterviewWithJob, error)
	ConfirmByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm string) (*domain.InterviewWithJob, error)
	ModifyByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm, notes string) (*domain.InterviewWithJob, error)

	// Candidate link
	GetForCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error)
	ConfirmByCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error)
	RescheduleByCandidate(ctx context.Context, token domain.CandidateToken, date, tm, reason string) (*domain.InterviewWithJob, error)

	// Admin arbitration
	ApproveModification(ctx context.Context, id string) (*domain.InterviewWithJob, error)
	RejectModification(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error)
	AcceptReschedule(ctx context.Context, id string) (*domain.InterviewWithJob, error)
	DeclineReschedule(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error)
	Cancel(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error)

	// Read projections
	GetInterview(ctx context.Context, id string) (*domain.InterviewWithJob, error)
	ListUpcoming(ctx context.Context, days int) ([]domain.InterviewWithJob, error)
	ListByCandidature(ctx context.Context, candidatureID string) ([]domain.InterviewWithJob, error)
	ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.InterviewWithJob, error)
	ListByUser(ctx context.Context, userID string) ([]domain.InterviewWithJob, error)
}

// InterviewNotifier fans a committed transition out to the next actor.
// It never reports failure to the caller.
type InterviewNotifier interface {
	Notify(ctx context.Context, event domain.NotificationType, iv *domain.InterviewWithJob)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type AuthService interface {
	// Login returns a staff access token and its expiry.
	Login(ctx context.Context, email, password string) (string, time.Time, *domain.User, error)
}

// Recipient is one addressee of an outbound message.
type Recipient struct {
	Email string
	Name  string
}

// MessagingGateway delivers one templated message. Template names are
// resolved to provider ids by the implementation.
type MessagingGateway interface {
	Send(ctx context.Context, template string, to Recipient, vars map[string]any) error
}

// Template names, as configured under email.templates.
const (
	TemplateResponsibleRequest = "interview_responsible_request"
	TemplateCandidateRequest   = "interview_candidate_request"
	TemplateAdminUpdate        = "interview_admin_update"
	TemplateResponsibleUpdate  = "interview_responsible_update"
	TemplateCancelled          = "interview_cancelled"
	TemplateUpcomingDigest     = "interview_upcoming_digest"
)
