package service

import (
	"context"
	"fmt"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
)

type interviewNotifier struct {
	gateway    MessagingGateway
	noteRepo   repository.NotificationRepository
	userRepo   repository.UserRepository
	publicURL  string
	adminEmail string
}

func NewInterviewNotifier(
	gateway MessagingGateway,
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publicURL, adminEmail string,
) InterviewNotifier {
	return &interviewNotifier{
		gateway:    gateway,
		noteRepo:   noteRepo,
		userRepo:   userRepo,
		publicURL:  publicURL,
		adminEmail: adminEmail,
	}
}

func (n *interviewNotifier) Notify(ctx context.Context, event domain.NotificationType, iv *domain.InterviewWithJob) {
	log := logger.WithInterview(iv.ID, string(iv.Status))
	log.Debug("Fanning out interview event", "event", event)

	vars := n.vars(ctx, iv)
	note := n.note(event, iv)

	switch event {
	case domain.NotificationInterviewScheduled:
		n.emailResponsible(ctx, TemplateResponsibleRequest, iv, vars)
		n.toUser(ctx, iv.AssignedUserID, note)

	case domain.NotificationInterviewResponsibleConfirmed:
		n.emailCandidate(ctx, TemplateCandidateRequest, iv, vars)
		n.toAdmins(ctx, note)

	case domain.NotificationInterviewModificationRequest,
		domain.NotificationInterviewRescheduleRequested:
		n.emailAdmin(ctx, event, vars)
		n.toAdmins(ctx, note)

	case domain.NotificationInterviewCandidateConfirmed:
		n.emailAdmin(ctx, event, vars)
		n.toAdmins(ctx, note)
		n.toUser(ctx, iv.AssignedUserID, note)

	case domain.NotificationInterviewModificationApproved,
		domain.NotificationInterviewModificationRejected,
		domain.NotificationInterviewRescheduleAccepted:
		n.emailResponsible(ctx, TemplateResponsibleUpdate, iv, vars)
		n.toUser(ctx, iv.AssignedUserID, note)

	case domain.NotificationInterviewRescheduleDeclined:
		n.emailCandidate(ctx, TemplateCandidateRequest, iv, vars)
		n.toAdmins(ctx, note)

	case domain.NotificationInterviewCancelled:
		n.emailResponsible(ctx, TemplateCancelled, iv, vars)
		if iv.CandidateToken != "" {
			n.emailCandidate(ctx, TemplateCancelled, iv, vars)
		}
		n.toUser(ctx, iv.AssignedUserID, note)

	default:
		log.Warn("No fan-out defined for interview event", "event", event)
	}
}

// ResponsibleLink is the capability URL handed to the Responsible.
func ResponsibleLink(publicURL string, tok domain.ResponsibleToken) string {
	return fmt.Sprintf("%s/interviews/responsible/%s", publicURL, tok)
}

// CandidateLink is the capability URL handed to the Candidate.
func CandidateLink(publicURL string, tok domain.CandidateToken) string {
	return fmt.Sprintf("%s/interviews/candidate/%s", publicURL, tok)
}

func (n *interviewNotifier) vars(ctx context.Context, iv *domain.InterviewWithJob) map[string]any {
	date, tm := iv.EffectiveDate()
	vars := map[string]any{
		"interviewId":     iv.ID,
		"candidateName":   iv.CandidateName,
		"responsibleName": n.responsibleName(ctx, iv.Interview),
		"jobTitle":        iv.JobTitle,
		"date":            date,
		"time":            tm,
		"status":          string(iv.Status),
		"adminLink":       fmt.Sprintf("%s/admin/interviews/%s", n.publicURL, iv.ID),
	}
	if p := iv.ResponsibleProposal; p != nil {
		vars["requestedDate"], vars["requestedTime"], vars["notes"] = p.Date, p.Time, p.Notes
	}
	if r := iv.CandidateReschedule; r != nil {
		vars["requestedDate"], vars["requestedTime"], vars["reason"] = r.Date, r.Time, r.Reason
	}
	if iv.AdminRejectionReason != "" {
		vars["reason"] = iv.AdminRejectionReason
	}
	if iv.CancellationReason != "" {
		vars["reason"] = iv.CancellationReason
	}
	return vars
}

func (n *interviewNotifier) responsibleName(ctx context.Context, iv *domain.Interview) string {
	u, err := n.userRepo.GetByID(ctx, iv.AssignedUserID)
	if err != nil {
		logger.Warn("Failed to resolve responsible name", "interviewID", iv.ID, "userID", iv.AssignedUserID, "error", err)
		return iv.AssignedUserEmail
	}
	return u.Name
}

func (n *interviewNotifier) emailResponsible(ctx context.Context, template string, iv *domain.InterviewWithJob, vars map[string]any) {
	v := copyVars(vars)
	v["link"] = ResponsibleLink(n.publicURL, iv.ConfirmationToken)
	n.send(ctx, template, Recipient{Email: iv.AssignedUserEmail, Name: fmt.Sprint(vars["responsibleName"])}, v)
}

func (n *interviewNotifier) emailCandidate(ctx context.Context, template string, iv *domain.InterviewWithJob, vars map[string]any) {
	if iv.CandidateToken == "" {
		logger.Error("Candidate email requested before a candidate token exists", "interviewID", iv.ID)
		return
	}
	v := copyVars(vars)
	v["link"] = CandidateLink(n.publicURL, iv.CandidateToken)
	n.send(ctx, template, Recipient{Email: iv.CandidateEmail, Name: iv.CandidateName}, v)
}

func (n *interviewNotifier) emailAdmin(ctx context.Context, event domain.NotificationType, vars map[string]any) {
	if n.adminEmail == "" {
		err := apperr.Configuration("no admin address configured")
		logger.ErrorContext(ctx, "Admin email skipped", "event", event, "error", err)
		return
	}
	v := copyVars(vars)
	v["event"] = string(event)
	v["link"] = vars["adminLink"]
	n.send(ctx, TemplateAdminUpdate, Recipient{Email: n.adminEmail, Name: "Admin"}, v)
}

func (n *interviewNotifier) send(ctx context.Context, template string, to Recipient, vars map[string]any) {
	if err := n.gateway.Send(ctx, template, to, vars); err != nil {
		logger.WarnContext(ctx, "Interview email not delivered", "template", template, "to", to.Email, "error", err)
	}
}

func (n *interviewNotifier) toUser(ctx context.Context, userID string, note domain.Notification) {
	note.RecipientID = userID
	if err := n.noteRepo.Create(ctx, &note); err != nil {
		logger.WarnContext(ctx, "In-app notification not stored", "recipientID", userID, "type", note.Type, "error", err)
	}
}

func (n *interviewNotifier) toAdmins(ctx context.Context, note domain.Notification) {
	copies, err := n.noteRepo.CreateForRole(ctx, domain.UserRoleAdmin, &note)
	if err != nil {
		logger.WarnContext(ctx, "Admin notifications not stored", "type", note.Type, "error", err)
		return
	}
	logger.Debug("Admin notifications stored", "type", note.Type, "copies", copies)
}

func (n *interviewNotifier) note(event domain.NotificationType, iv *domain.InterviewWithJob) domain.Notification {
	who := fmt.Sprintf("%s (%s)", iv.CandidateName, iv.JobTitle)
	date, tm := iv.EffectiveDate()

	var title, msg string
	switch event {
	case domain.NotificationInterviewScheduled:
		title, msg = "Interview to confirm", fmt.Sprintf("Please confirm the interview with %s proposed for %s %s.", who, date, tm)
	case domain.NotificationInterviewResponsibleConfirmed:
		title, msg = "Interview confirmed by responsible", fmt.Sprintf("The interview with %s is set for %s %s and awaits the candidate.", who, date, tm)
	case domain.NotificationInterviewModificationRequest:
		title, msg = "Interview change requested", fmt.Sprintf("The responsible proposed another date for the interview with %s.", who)
	case domain.NotificationInterviewCandidateConfirmed:
		title, msg = "Interview confirmed", fmt.Sprintf("%s confirmed the interview on %s %s.", iv.CandidateName, date, tm)
	case domain.NotificationInterviewRescheduleRequested:
		title, msg = "Reschedule requested", fmt.Sprintf("%s asked to reschedule the interview.", who)
	case domain.NotificationInterviewModificationApproved:
		title, msg = "Interview change approved", fmt.Sprintf("Your new date for the interview with %s was approved. Please confirm it.", who)
	case domain.NotificationInterviewModificationRejected:
		title, msg = "Interview change rejected", fmt.Sprintf("Your change for the interview with %s was rejected: %s", who, iv.AdminRejectionReason)
	case domain.NotificationInterviewRescheduleAccepted:
		title, msg = "Candidate reschedule accepted", fmt.Sprintf("The candidate's date %s %s for %s was accepted. Please confirm it.", date, tm, who)
	case domain.NotificationInterviewRescheduleDeclined:
		title, msg = "Candidate reschedule declined", fmt.Sprintf("The reschedule request of %s was declined.", who)
	case domain.NotificationInterviewCancelled:
		title, msg = "Interview cancelled", fmt.Sprintf("The interview with %s was cancelled.", who)
	default:
		title, msg = "Interview update", fmt.Sprintf("The interview with %s changed to %s.", who, iv.Status)
	}

	return domain.Notification{
		Type:    event,
		Title:   title,
		Message: msg,
		Link:    fmt.Sprintf("%s/admin/interviews/%s", n.publicURL, iv.ID),
		Metadata: map[string]string{
			"interviewId": iv.ID,
			"status":      string(iv.Status),
		},
	}
}

func copyVars(vars map[string]any) map[string]any {
	out := make(map[string]any, len(vars)+2)
	for k, v := range vars {
		out[k] = v
	}
	return out
}
