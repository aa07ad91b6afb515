package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"hireflow-backend/internal/domain"
)

// ErrDuplicateToken is returned by InterviewRepository.Create when a freshly
// minted capability token collides with a stored one.
var ErrDuplicateToken = errors.New("capability token already in use")

// InterviewRepository is the Interview Store. Lookups by token resolve the
// capability; UpdateIfStatus is the only write path after creation.
type InterviewRepository interface {
	Create(ctx context.Context, iv *domain.Interview) error
	GetByID(ctx context.Context, id string) (*domain.Interview, error)
	GetByResponsibleToken(ctx context.Context, token domain.ResponsibleToken) (*domain.Interview, error)
	GetByCandidateToken(ctx context.Context, token domain.CandidateToken) (*domain.Interview, error)

	// UpdateIfStatus persists iv only if the stored status still equals
	// expected. A mismatch yields an apperr IllegalTransition error.
	UpdateIfStatus(ctx context.Context, iv *domain.Interview, expected domain.InterviewStatus) error

	ListByCandidature(ctx context.Context, candidatureID string) ([]domain.Interview, error)
	ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.Interview, error)
	ListByAssignedUser(ctx context.Context, userID string) ([]domain.Interview, error)
	// ListUpcoming returns non-cancelled interviews whose effective date lies in [from, to].
	ListUpcoming(ctx context.Context, from, to string) ([]domain.Interview, error)
	// ListStale returns interviews in status whose last transition and last
	// reminder are both older than olderThan.
	ListStale(ctx context.Context, status domain.InterviewStatus, olderThan time.Time) ([]domain.Interview, error)
	// MarkReminded records a reminder sent at at, if the interview is still in status.
	// It never changes updated_at.
	MarkReminded(ctx context.Context, id string, status domain.InterviewStatus, at time.Time) error
}

// NotificationRepository is the in-app Notification Sink.
type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	// CreateForRole stores one independent copy of note per user currently holding role.
	CreateForRole(ctx context.Context, role domain.UserRole, note *domain.Notification) (int64, error)
	List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, recipientID string) error
}

// UserRepository is the Identity Directory.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// JobOfferRepository is the Job Directory.
type JobOfferRepository interface {
	GetByID(ctx context.Context, id string) (*domain.JobOffer, error)
}

// CandidatureRepository is the Candidate Directory.
type CandidatureRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Candidature, error)
}

// JobClaimRepository records which scheduled job runs have been taken, so
// that several cronjob replicas run each period once.
type JobClaimRepository interface {
	Claim(ctx context.Context, jobName, period, owner string) (bool, error)
}
