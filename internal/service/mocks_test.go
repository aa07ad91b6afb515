package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/repository"
	"hireflow-backend/internal/service"
)

// memInterviewRepo keeps interviews in memory and enforces the same
// conditional update as the postgres store.
type memInterviewRepo struct {
	mu       sync.Mutex
	items    map[string]*domain.Interview
	reminded map[string]time.Time

	// beforeUpdate runs inside UpdateIfStatus, before the status check.
	beforeUpdate func(stored *domain.Interview)
}

func newMemInterviewRepo() *memInterviewRepo {
	return &memInterviewRepo{items: make(map[string]*domain.Interview), reminded: make(map[string]time.Time)}
}

func (r *memInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.items {
		if other.ConfirmationToken == iv.ConfirmationToken {
			return repository.ErrDuplicateToken
		}
	}
	r.items[iv.ID] = iv.Clone()
	return nil
}

func (r *memInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv, ok := r.items[id]; ok {
		return iv.Clone(), nil
	}
	return nil, apperr.NotFound("interview %s not found", id)
}

func (r *memInterviewRepo) GetByResponsibleToken(ctx context.Context, token domain.ResponsibleToken) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, iv := range r.items {
		if iv.ConfirmationToken == token {
			return iv.Clone(), nil
		}
	}
	return nil, apperr.NotFound("no interview for this confirmation link")
}

func (r *memInterviewRepo) GetByCandidateToken(ctx context.Context, token domain.CandidateToken) (*domain.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, iv := range r.items {
		if token != "" && iv.CandidateToken == token {
			return iv.Clone(), nil
		}
	}
	return nil, apperr.NotFound("no interview for this candidate link")
}

func (r *memInterviewRepo) UpdateIfStatus(ctx context.Context, iv *domain.Interview, expected domain.InterviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[iv.ID]
	if !ok {
		return apperr.NotFound("interview %s not found", iv.ID)
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(stored)
	}
	if stored.Status != expected {
		return apperr.IllegalTransition("interview %s is no longer in status %s", iv.ID, expected)
	}
	if iv.CandidateToken != "" && stored.CandidateToken == "" {
		for id, other := range r.items {
			if id != iv.ID && other.CandidateToken == iv.CandidateToken {
				return repository.ErrDuplicateToken
			}
		}
	}
	next := iv.Clone()
	if stored.CandidateToken != "" {
		next.CandidateToken = stored.CandidateToken
	}
	r.items[iv.ID] = next
	return nil
}

func (r *memInterviewRepo) ListByCandidature(ctx context.Context, candidatureID string) ([]domain.Interview, error) {
	return r.filter(func(iv *domain.Interview) bool { return iv.CandidatureID == candidatureID }), nil
}

func (r *memInterviewRepo) ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.Interview, error) {
	return r.filter(func(iv *domain.Interview) bool { return iv.JobOfferID == jobOfferID }), nil
}

func (r *memInterviewRepo) ListByAssignedUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	return r.filter(func(iv *domain.Interview) bool { return iv.AssignedUserID == userID }), nil
}

func (r *memInterviewRepo) ListUpcoming(ctx context.Context, from, to string) ([]domain.Interview, error) {
	return r.filter(func(iv *domain.Interview) bool {
		d, _ := iv.EffectiveDate()
		return iv.Status != domain.InterviewStatusCancelled && d >= from && d <= to
	}), nil
}

func (r *memInterviewRepo) ListStale(ctx context.Context, status domain.InterviewStatus, olderThan time.Time) ([]domain.Interview, error) {
	return r.filter(func(iv *domain.Interview) bool {
		last := iv.UpdatedAt
		if at, ok := r.reminded[iv.ID]; ok && at.After(last) {
			last = at
		}
		return iv.Status == status && last.Before(olderThan)
	}), nil
}

func (r *memInterviewRepo) MarkReminded(ctx context.Context, id string, status domain.InterviewStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv, ok := r.items[id]; ok && iv.Status == status {
		r.reminded[id] = at
	}
	return nil
}

func (r *memInterviewRepo) filter(keep func(*domain.Interview) bool) []domain.Interview {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Interview
	for _, iv := range r.items {
		if keep(iv) {
			out = append(out, *iv.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MockJobOfferRepo
type MockJobOfferRepo struct {
	mock.Mock
}

func (m *MockJobOfferRepo) GetByID(ctx context.Context, id string) (*domain.JobOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobOffer), args.Error(1)
}

// MockCandidatureRepo
type MockCandidatureRepo struct {
	mock.Mock
}

func (m *MockCandidatureRepo) GetByID(ctx context.Context, id string) (*domain.Candidature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidature), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) CreateForRole(ctx context.Context, role domain.UserRole, n *domain.Notification) (int64, error) {
	args := m.Called(ctx, role, n)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, template string, to service.Recipient, vars map[string]any) error {
	args := m.Called(ctx, template, to, vars)
	return args.Error(0)
}

// recordingNotifier keeps the events it was asked to fan out.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.NotificationType
}

func (n *recordingNotifier) Notify(ctx context.Context, event domain.NotificationType, iv *domain.InterviewWithJob) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) last() domain.NotificationType {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return ""
	}
	return n.events[len(n.events)-1]
}
