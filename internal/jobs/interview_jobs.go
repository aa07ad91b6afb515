package jobs

import (
	"context"
	"time"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/service"
)

const (
	JobUpcomingDigest   = "upcoming-digest"
	JobPendingReminders = "pending-reminders"
)

// SendUpcomingDigest emails the admin address the interviews taking place
// within the configured upcoming window.
func (jr *JobRunner) SendUpcomingDigest() {
	jr.runWithRecovery(JobUpcomingDigest, func() {
		ctx := context.Background()
		if !jr.claim(ctx, JobUpcomingDigest, jr.now().Format(domain.DateLayout)) {
			return
		}

		adminEmail := jr.config.Email.AdminEmail
		if adminEmail == "" {
			logger.Error("Upcoming digest skipped", "error", apperr.Configuration("no admin address configured"))
			return
		}

		days := jr.config.App.UpcomingWindowDays
		list, err := jr.services.Interview.ListUpcoming(ctx, days)
		if err != nil {
			logger.Error("Failed to list upcoming interviews", "error", err)
			return
		}
		if len(list) == 0 {
			logger.Info("No upcoming interviews, digest not sent", "days", days)
			return
		}

		rows := make([]map[string]any, 0, len(list))
		for _, iv := range list {
			date, tm := iv.EffectiveDate()
			rows = append(rows, map[string]any{
				"interviewId":   iv.ID,
				"candidateName": iv.CandidateName,
				"jobTitle":      iv.JobTitle,
				"date":          date,
				"time":          tm,
				"status":        string(iv.Status),
			})
		}

		vars := map[string]any{
			"days":       days,
			"count":      len(list),
			"interviews": rows,
			"link":       jr.config.App.PublicURL + "/admin/interviews",
		}
		to := service.Recipient{Email: adminEmail, Name: "Admin"}
		if err := jr.services.Gateway.Send(ctx, service.TemplateUpcomingDigest, to, vars); err != nil {
			logger.Error("Failed to send upcoming digest", "error", err)
			return
		}
		logger.Info("Upcoming digest sent", "count", len(list), "days", days)
	})
}

// SendPendingReminders re-sends the outstanding link to whoever has let an
// interview sit unanswered longer than the configured reminder age. A sent
// reminder restarts that interview's age.
func (jr *JobRunner) SendPendingReminders() {
	jr.runWithRecovery(JobPendingReminders, func() {
		ctx := context.Background()
		now := jr.now()
		if !jr.claim(ctx, JobPendingReminders, now.Format("2006-01-02T15")) {
			return
		}
		olderThan := now.Add(-jr.config.PendingReminderAge())

		responsible := jr.remind(ctx, domain.InterviewStatusPendingConfirmation, olderThan)
		candidate := jr.remind(ctx, domain.InterviewStatusPendingCandidateConfirmation, olderThan)
		logger.Info("Pending reminders sent", "responsible", responsible, "candidate", candidate)
	})
}

func (jr *JobRunner) remind(ctx context.Context, status domain.InterviewStatus, olderThan time.Time) int {
	list, err := jr.repos.Interviews.ListStale(ctx, status, olderThan)
	if err != nil {
		logger.Error("Failed to list stale interviews", "status", status, "error", err)
		return 0
	}

	titles := make(map[string]string)
	count := 0
	for i := range list {
		iv := &list[i]
		title, ok := titles[iv.JobOfferID]
		if !ok {
			if job, err := jr.repos.JobOffers.GetByID(ctx, iv.JobOfferID); err == nil {
				title = job.Title
			} else {
				logger.Warn("Failed to resolve job title", "interviewID", iv.ID, "jobOfferID", iv.JobOfferID, "error", err)
			}
			titles[iv.JobOfferID] = title
		}

		date, tm := iv.EffectiveDate()
		vars := map[string]any{
			"interviewId":   iv.ID,
			"candidateName": iv.CandidateName,
			"jobTitle":      title,
			"date":          date,
			"time":          tm,
			"status":        string(iv.Status),
			"reminder":      true,
		}

		var template string
		var to service.Recipient
		switch status {
		case domain.InterviewStatusPendingConfirmation:
			template = service.TemplateResponsibleRequest
			to = service.Recipient{Email: iv.AssignedUserEmail, Name: iv.AssignedUserEmail}
			vars["link"] = service.ResponsibleLink(jr.config.App.PublicURL, iv.ConfirmationToken)
		case domain.InterviewStatusPendingCandidateConfirmation:
			if iv.CandidateToken == "" {
				logger.Error("Candidate reminder skipped, no candidate token", "interviewID", iv.ID)
				continue
			}
			template = service.TemplateCandidateRequest
			to = service.Recipient{Email: iv.CandidateEmail, Name: iv.CandidateName}
			vars["link"] = service.CandidateLink(jr.config.App.PublicURL, iv.CandidateToken)
		default:
			continue
		}

		if err := jr.services.Gateway.Send(ctx, template, to, vars); err != nil {
			logger.Error("Failed to send pending reminder",
				"interviewID", iv.ID,
				"status", status,
				"error", err)
			continue
		}
		count++
		logger.Debug("Sent pending reminder", "interviewID", iv.ID, "status", status)
		if err := jr.repos.Interviews.MarkReminded(ctx, iv.ID, status, jr.now()); err != nil {
			logger.Warn("Failed to record reminder", "interviewID", iv.ID, "error", err)
		}
	}
	return count
}
