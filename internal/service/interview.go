package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
	"hireflow-backend/internal/security"
)

// maxMintAttempts bounds retries after a capability token collision.
const maxMintAttempts = 3

type interviewService struct {
	interviewRepo repository.InterviewRepository
	jobRepo       repository.JobOfferRepository
	candRepo      repository.CandidatureRepository
	userRepo      repository.UserRepository
	notifier      InterviewNotifier

	upcomingDays    int
	now             func() time.Time
	mintResponsible func() (domain.ResponsibleToken, error)
	mintCandidate   func() (domain.CandidateToken, error)
}

type InterviewServiceOption func(*interviewService)

// WithClock replaces the wall clock used for audit timestamps and the upcoming window.
func WithClock(now func() time.Time) InterviewServiceOption {
	return func(s *interviewService) { s.now = now }
}

// WithTokenMinters replaces the capability token generators.
func WithTokenMinters(responsible func() (domain.ResponsibleToken, error), candidate func() (domain.CandidateToken, error)) InterviewServiceOption {
	return func(s *interviewService) {
		s.mintResponsible = responsible
		s.mintCandidate = candidate
	}
}

// WithUpcomingDays sets the default window of ListUpcoming.
func WithUpcomingDays(days int) InterviewServiceOption {
	return func(s *interviewService) { s.upcomingDays = days }
}

func NewInterviewService(
	interviewRepo repository.InterviewRepository,
	jobRepo repository.JobOfferRepository,
	candRepo repository.CandidatureRepository,
	userRepo repository.UserRepository,
	notifier InterviewNotifier,
	opts ...InterviewServiceOption,
) InterviewService {
	s := &interviewService{
		interviewRepo:   interviewRepo,
		jobRepo:         jobRepo,
		candRepo:        candRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		upcomingDays:    7,
		now:             func() time.Time { return time.Now().UTC() },
		mintResponsible: security.NewResponsibleToken,
		mintCandidate:   security.NewCandidateToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *interviewService) Schedule(ctx context.Context, in ScheduleInput) (*domain.InterviewWithJob, error) {
	logger.EnterMethod("interviewService.Schedule", "candidatureID", in.CandidatureID, "jobOfferID", in.JobOfferID)

	if in.CandidatureID == "" || in.JobOfferID == "" || in.Date == "" || strings.TrimSpace(in.Time) == "" {
		return nil, apperr.Validation("candidatureId, jobOfferId, date and time are required")
	}
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, in.JobOfferID)
	if err != nil {
		return nil, err
	}
	if job.AssignedUserID == "" {
		err := apperr.MarkValidation(apperr.Configuration("job offer %s has no assigned responsible", job.ID))
		return nil, apperr.WithHint(err, "Assign a responsible to the job offer before scheduling an interview.")
	}
	responsible, err := s.userRepo.GetByID(ctx, job.AssignedUserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.MarkValidation(apperr.Configuration("assigned responsible %s of job offer %s does not exist", job.AssignedUserID, job.ID))
		}
		return nil, err
	}

	cand, err := s.candRepo.GetByID(ctx, in.CandidatureID)
	if err != nil {
		return nil, err
	}
	if cand.JobOfferID != job.ID {
		return nil, apperr.Validation("candidature %s does not belong to job offer %s", cand.ID, job.ID)
	}
	if cand.CandidateEmail == "" {
		return nil, apperr.Validation("candidature %s has no candidate email", cand.ID)
	}

	now := s.now()
	iv := &domain.Interview{
		ID:                uuid.NewString(),
		CandidatureID:     cand.ID,
		JobOfferID:        job.ID,
		CandidateEmail:    cand.CandidateEmail,
		CandidateName:     cand.CandidateName,
		AssignedUserID:    responsible.ID,
		AssignedUserEmail: responsible.Email,
		ProposedDate:      in.Date,
		ProposedTime:      in.Time,
		Status:            domain.InterviewStatusPendingConfirmation,
		CreatedBy:         in.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for attempt := 1; ; attempt++ {
		tok, err := s.mintResponsible()
		if err != nil {
			return nil, err
		}
		iv.ConfirmationToken = tok

		err = s.interviewRepo.Create(ctx, iv)
		if err == nil {
			break
		}
		if !apperr.Is(err, repository.ErrDuplicateToken) || attempt == maxMintAttempts {
			logger.ExitMethodWithError("interviewService.Schedule", err, "attempt", attempt)
			return nil, err
		}
		logger.Warn("Confirmation token collided, minting again", "attempt", attempt)
	}

	view := &domain.InterviewWithJob{Interview: iv, JobTitle: job.Title}
	s.notifier.Notify(ctx, domain.NotificationInterviewScheduled, view)

	logger.ExitMethod("interviewService.Schedule", "interviewID", iv.ID)
	return view, nil
}

func (s *interviewService) GetForResponsible(ctx context.Context, token domain.ResponsibleToken) (*domain.InterviewWithJob, error) {
	iv, err := s.interviewRepo.GetByResponsibleToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.withJob(ctx, iv), nil
}

func (s *interviewService) ConfirmByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm string) (*domain.InterviewWithJob, error) {
	if err := requireSlot(date, tm); err != nil {
		return nil, err
	}
	iv, err := s.interviewRepo.GetByResponsibleToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, iv, domain.NotificationInterviewResponsibleConfirmed, func(next *domain.Interview, now time.Time) error {
		return next.ConfirmByResponsible(date, tm, s.mintCandidate, now)
	})
}

func (s *interviewService) ModifyByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm, notes string) (*domain.InterviewWithJob, error) {
	if err := requireSlot(date, tm); err != nil {
		return nil, err
	}
	iv, err := s.interviewRepo.GetByResponsibleToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, iv, domain.NotificationInterviewModificationRequest, func(next *domain.Interview, now time.Time) error {
		return next.ProposeByResponsible(date, tm, notes, now)
	})
}

func (s *interviewService) GetForCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error) {
	iv, err := s.interviewRepo.GetByCandidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.withJob(ctx, iv), nil
}

func (s *interviewService) ConfirmByCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error) {
	iv, err := s.interviewRepo.GetByCandidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, iv, domain.NotificationInterviewCandidateConfirmed, func(next *domain.Interview, now time.Time) error {
		return next.ConfirmByCandidate(now)
	})
}

func (s *interviewService) RescheduleByCandidate(ctx context.Context, token domain.CandidateToken, date, tm, reason string) (*domain.InterviewWithJob, error) {
	if err := requireSlot(date, tm); err != nil {
		return nil, err
	}
	iv, err := s.interviewRepo.GetByCandidateToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, iv, domain.NotificationInterviewRescheduleRequested, func(next *domain.Interview, now time.Time) error {
		return next.RequestReschedule(date, tm, reason, now)
	})
}

func (s *interviewService) ApproveModification(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	return s.applyByID(ctx, id, domain.NotificationInterviewModificationApproved, func(next *domain.Interview, now time.Time) error {
		return next.ApproveModification(now)
	})
}

func (s *interviewService) RejectModification(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return s.applyByID(ctx, id, domain.NotificationInterviewModificationRejected, func(next *domain.Interview, now time.Time) error {
		return next.RejectModification(reason, now)
	})
}

func (s *interviewService) AcceptReschedule(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	return s.applyByID(ctx, id, domain.NotificationInterviewRescheduleAccepted, func(next *domain.Interview, now time.Time) error {
		return next.AcceptReschedule(now)
	})
}

func (s *interviewService) DeclineReschedule(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return s.applyByID(ctx, id, domain.NotificationInterviewRescheduleDeclined, func(next *domain.Interview, now time.Time) error {
		return next.DeclineReschedule(reason, now)
	})
}

func (s *interviewService) Cancel(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return s.applyByID(ctx, id, domain.NotificationInterviewCancelled, func(next *domain.Interview, now time.Time) error {
		return next.Cancel(reason, now)
	})
}

func (s *interviewService) GetInterview(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	iv, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withJob(ctx, iv), nil
}

func (s *interviewService) ListUpcoming(ctx context.Context, days int) ([]domain.InterviewWithJob, error) {
	if days <= 0 {
		days = s.upcomingDays
	}
	today := s.now()
	from := today.Format(domain.DateLayout)
	to := today.AddDate(0, 0, days).Format(domain.DateLayout)

	list, err := s.interviewRepo.ListUpcoming(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, list), nil
}

func (s *interviewService) ListByCandidature(ctx context.Context, candidatureID string) ([]domain.InterviewWithJob, error) {
	list, err := s.interviewRepo.ListByCandidature(ctx, candidatureID)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, list), nil
}

func (s *interviewService) ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.InterviewWithJob, error) {
	list, err := s.interviewRepo.ListByJobOffer(ctx, jobOfferID)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, list), nil
}

func (s *interviewService) ListByUser(ctx context.Context, userID string) ([]domain.InterviewWithJob, error) {
	list, err := s.interviewRepo.ListByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withJobs(ctx, list), nil
}

func (s *interviewService) applyByID(ctx context.Context, id string, event domain.NotificationType, mutate func(*domain.Interview, time.Time) error) (*domain.InterviewWithJob, error) {
	iv, err := s.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, iv, event, mutate)
}

// apply runs mutate on a copy of current and persists the copy only if the
// stored status is still current.Status. Notifications go out after the write.
func (s *interviewService) apply(ctx context.Context, current *domain.Interview, event domain.NotificationType, mutate func(*domain.Interview, time.Time) error) (*domain.InterviewWithJob, error) {
	logger.EnterMethod("interviewService.apply", "interviewID", current.ID, "status", current.Status, "event", event)

	var next *domain.Interview
	for attempt := 1; ; attempt++ {
		next = current.Clone()
		if err := mutate(next, s.now()); err != nil {
			logger.ExitMethod("interviewService.apply", "interviewID", current.ID, "rejected", err.Error())
			return nil, err
		}

		err := s.interviewRepo.UpdateIfStatus(ctx, next, current.Status)
		if err == nil {
			break
		}
		// Only a freshly minted candidate token can collide.
		if !apperr.Is(err, repository.ErrDuplicateToken) || attempt == maxMintAttempts {
			logger.ExitMethodWithError("interviewService.apply", err, "interviewID", current.ID)
			return nil, err
		}
		logger.Warn("Candidate token collided, minting again", "interviewID", current.ID, "attempt", attempt)
	}

	view := s.withJob(ctx, next)
	s.notifier.Notify(ctx, event, view)

	logger.ExitMethod("interviewService.apply", "interviewID", next.ID, "status", next.Status)
	return view, nil
}

// withJob enriches iv with its job title. A failed lookup leaves the title
// empty; it must not fail a transition that has already been written.
func (s *interviewService) withJob(ctx context.Context, iv *domain.Interview) *domain.InterviewWithJob {
	view := &domain.InterviewWithJob{Interview: iv}
	job, err := s.jobRepo.GetByID(ctx, iv.JobOfferID)
	if err != nil {
		logger.Warn("Failed to resolve job title", "interviewID", iv.ID, "jobOfferID", iv.JobOfferID, "error", err)
		return view
	}
	view.JobTitle = job.Title
	return view
}

func (s *interviewService) withJobs(ctx context.Context, list []domain.Interview) []domain.InterviewWithJob {
	titles := make(map[string]string)
	views := make([]domain.InterviewWithJob, 0, len(list))
	for i := range list {
		iv := &list[i]
		title, ok := titles[iv.JobOfferID]
		if !ok {
			title = s.withJob(ctx, iv).JobTitle
			titles[iv.JobOfferID] = title
		}
		views = append(views, domain.InterviewWithJob{Interview: iv, JobTitle: title})
	}
	return views
}

func requireSlot(date, tm string) error {
	if date == "" || strings.TrimSpace(tm) == "" {
		return apperr.Validation("date and time are required")
	}
	_, err := domain.ParseDate(date)
	return err
}
