package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/service"
)

type MockInterviewService struct {
	mock.Mock
}

func (m *MockInterviewService) one(args mock.Arguments) (*domain.InterviewWithJob, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewWithJob), args.Error(1)
}

func (m *MockInterviewService) many(args mock.Arguments) ([]domain.InterviewWithJob, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewWithJob), args.Error(1)
}

func (m *MockInterviewService) Schedule(ctx context.Context, in service.ScheduleInput) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, in))
}

func (m *MockInterviewService) GetForResponsible(ctx context.Context, token domain.ResponsibleToken) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token))
}

func (m *MockInterviewService) ConfirmByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token, date, tm))
}

func (m *MockInterviewService) ModifyByResponsible(ctx context.Context, token domain.ResponsibleToken, date, tm, notes string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token, date, tm, notes))
}

func (m *MockInterviewService) GetForCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token))
}

func (m *MockInterviewService) ConfirmByCandidate(ctx context.Context, token domain.CandidateToken) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token))
}

func (m *MockInterviewService) RescheduleByCandidate(ctx context.Context, token domain.CandidateToken, date, tm, reason string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, token, date, tm, reason))
}

func (m *MockInterviewService) ApproveModification(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockInterviewService) RejectModification(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id, reason))
}

func (m *MockInterviewService) AcceptReschedule(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockInterviewService) DeclineReschedule(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id, reason))
}

func (m *MockInterviewService) Cancel(ctx context.Context, id, reason string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id, reason))
}

func (m *MockInterviewService) GetInterview(ctx context.Context, id string) (*domain.InterviewWithJob, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockInterviewService) ListUpcoming(ctx context.Context, days int) ([]domain.InterviewWithJob, error) {
	return m.many(m.Called(ctx, days))
}

func (m *MockInterviewService) ListByCandidature(ctx context.Context, candidatureID string) ([]domain.InterviewWithJob, error) {
	return m.many(m.Called(ctx, candidatureID))
}

func (m *MockInterviewService) ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.InterviewWithJob, error) {
	return m.many(m.Called(ctx, jobOfferID))
}

func (m *MockInterviewService) ListByUser(ctx context.Context, userID string) ([]domain.InterviewWithJob, error) {
	return m.many(m.Called(ctx, userID))
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return "", time.Time{}, nil, args.Error(3)
	}
	return args.String(0), args.Get(1).(time.Time), args.Get(2).(*domain.User), args.Error(3)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }
