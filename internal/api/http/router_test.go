package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apihttp "hireflow-backend/internal/api/http"
	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/security"
	"hireflow-backend/internal/service"
)

type fixture struct {
	router        http.Handler
	interviews    *MockInterviewService
	notifications *MockNotificationService
	auth          *MockAuthService
	tokens        security.TokenManager
}

func newFixture(t *testing.T, pingErr error) *fixture {
	t.Helper()
	f := &fixture{
		interviews:    new(MockInterviewService),
		notifications: new(MockNotificationService),
		auth:          new(MockAuthService),
		tokens:        security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour),
	}
	f.router = apihttp.NewRouter(apihttp.Handlers{
		Interviews:    apihttp.NewInterviewHandler(f.interviews),
		Auth:          apihttp.NewAuthHandler(f.auth),
		Notifications: apihttp.NewNotificationHandler(f.notifications),
		Health:        apihttp.NewHealthHandler(stubPinger{err: pingErr}),
	}, apihttp.NewAuthMiddleware(f.tokens))
	return f
}

func (f *fixture) bearer(t *testing.T, id string, role domain.UserRole) string {
	t.Helper()
	tok, _, err := f.tokens.GenerateAccessToken(&domain.User{ID: id, Email: id + "@example.com", Role: role})
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *fixture) do(method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func sampleInterview(status domain.InterviewStatus) *domain.InterviewWithJob {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.InterviewWithJob{
		Interview: &domain.Interview{
			ID:                "iv-1",
			CandidatureID:     "cand-1",
			JobOfferID:        "job-1",
			CandidateName:     "Ada Lovelace",
			CandidateEmail:    "ada@example.com",
			AssignedUserID:    "resp-1",
			AssignedUserEmail: "resp@example.com",
			Status:            status,
			ProposedDate:      "2025-03-10",
			ProposedTime:      "10:00",
			ConfirmationToken: "resp-token",
			CandidateToken:    "cand-token",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		JobTitle: "Backend Engineer",
	}
}

func TestRouter_ResponsibleLinkIsPublicAndHidesTokens(t *testing.T) {
	f := newFixture(t, nil)
	f.interviews.On("GetForResponsible", mock.Anything, domain.ResponsibleToken("resp-token")).
		Return(sampleInterview(domain.InterviewStatusPendingConfirmation), nil)

	rec := f.do(http.MethodGet, "/api/interviews/responsible/resp-token", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	body := string(env.Data)
	assert.Contains(t, body, `"jobTitle":"Backend Engineer"`)
	assert.NotContains(t, body, "resp-token")
	assert.NotContains(t, body, "cand-token")
	assert.NotContains(t, body, "ada@example.com")
}

func TestRouter_ConfirmByResponsible(t *testing.T) {
	f := newFixture(t, nil)
	f.interviews.On("ConfirmByResponsible", mock.Anything, domain.ResponsibleToken("resp-token"), "2025-03-11", "14:00").
		Return(sampleInterview(domain.InterviewStatusPendingCandidateConfirmation), nil).Once()

	rec := f.do(http.MethodPost, "/api/interviews/responsible/resp-token/confirm", "", `{"date":"2025-03-11","time":"14:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	f.interviews.AssertExpectations(t)
}

func TestRouter_SlotValidation(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/interviews/responsible/resp-token/modify", "", `{"date":"11/03/2025","time":"14:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/candidate/cand-token/reschedule", "", `{"date":"2025-03-12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/candidate/cand-token/reschedule", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.interviews.AssertNotCalled(t, "ModifyByResponsible", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.interviews.AssertNotCalled(t, "RescheduleByCandidate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_CandidateLink(t *testing.T) {
	f := newFixture(t, nil)
	f.interviews.On("ConfirmByCandidate", mock.Anything, domain.CandidateToken("cand-token")).
		Return(sampleInterview(domain.InterviewStatusConfirmed), nil).Once()
	f.interviews.On("RescheduleByCandidate", mock.Anything, domain.CandidateToken("cand-token"), "2025-03-12", "09:00", "travelling").
		Return(sampleInterview(domain.InterviewStatusCandidateRequestedReschedule), nil).Once()

	rec := f.do(http.MethodPost, "/api/interviews/candidate/cand-token/confirm", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/candidate/cand-token/reschedule", "", `{"date":"2025-03-12","time":"09:00","reason":"travelling"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	f.interviews.AssertExpectations(t)
}

func TestRouter_ErrorMapping(t *testing.T) {
	f := newFixture(t, nil)
	f.interviews.On("GetForCandidate", mock.Anything, domain.CandidateToken("unknown")).
		Return(nil, apperr.NotFound("interview not found"))
	f.interviews.On("ConfirmByCandidate", mock.Anything, domain.CandidateToken("stale")).
		Return(nil, apperr.IllegalTransition("interview is CONFIRMED"))
	f.interviews.On("ConfirmByCandidate", mock.Anything, domain.CandidateToken("broken")).
		Return(nil, errors.New("connection reset by peer"))

	rec := f.do(http.MethodGet, "/api/interviews/candidate/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/candidate/stale/confirm", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Message, "CONFIRMED")

	rec = f.do(http.MethodPost, "/api/interviews/candidate/broken/confirm", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Message)
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/interviews/iv-1/approve", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/iv-1/approve", "Bearer garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/interviews/iv-1/approve", f.bearer(t, "rec-1", domain.UserRoleRecruiter), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.interviews.AssertNotCalled(t, "ApproveModification", mock.Anything, mock.Anything)
}

func TestRouter_AdminArbitration(t *testing.T) {
	f := newFixture(t, nil)
	admin := f.bearer(t, "admin-1", domain.UserRoleAdmin)

	f.interviews.On("ApproveModification", mock.Anything, "iv-1").Return(sampleInterview(domain.InterviewStatusPendingConfirmation), nil).Once()
	f.interviews.On("RejectModification", mock.Anything, "iv-1", "no room").Return(sampleInterview(domain.InterviewStatusPendingConfirmation), nil).Once()
	f.interviews.On("AcceptReschedule", mock.Anything, "iv-1").Return(sampleInterview(domain.InterviewStatusPendingConfirmation), nil).Once()
	f.interviews.On("DeclineReschedule", mock.Anything, "iv-1", "").Return(sampleInterview(domain.InterviewStatusPendingCandidateConfirmation), nil).Once()
	f.interviews.On("Cancel", mock.Anything, "iv-1", "position filled").Return(sampleInterview(domain.InterviewStatusCancelled), nil).Once()

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/interviews/iv-1/approve", admin, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/interviews/iv-1/reject", admin, `{"reason":"no room"}`).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/interviews/iv-1/accept-reschedule", admin, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/interviews/iv-1/decline-reschedule", admin, "").Code)

	rec := f.do(http.MethodPost, "/api/interviews/iv-1/cancel", admin, `{"reason":"position filled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"confirmationToken":"resp-token"`)

	f.interviews.AssertExpectations(t)
}

func TestRouter_Schedule(t *testing.T) {
	f := newFixture(t, nil)
	admin := f.bearer(t, "admin-1", domain.UserRoleAdmin)

	f.interviews.On("Schedule", mock.Anything, service.ScheduleInput{
		CandidatureID: "cand-1",
		JobOfferID:    "job-1",
		Date:          "2025-03-10",
		Time:          "10:00",
		CreatedBy:     "admin-1",
	}).Return(sampleInterview(domain.InterviewStatusPendingConfirmation), nil).Once()

	rec := f.do(http.MethodPost, "/api/interviews", admin, `{"candidatureId":"cand-1","jobOfferId":"job-1","date":"2025-03-10","time":"10:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	f.interviews.AssertExpectations(t)

	t.Run("MissingFields", func(t *testing.T) {
		rec := f.do(http.MethodPost, "/api/interviews", admin, `{"candidatureId":"cand-1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ConfigurationErrorCarriesHint", func(t *testing.T) {
		err := apperr.MarkValidation(apperr.WithHint(apperr.Configuration("job offer job-2 has no assigned responsible"), "assign a responsible first"))
		f.interviews.On("Schedule", mock.Anything, mock.MatchedBy(func(in service.ScheduleInput) bool { return in.JobOfferID == "job-2" })).
			Return(nil, err).Once()

		rec := f.do(http.MethodPost, "/api/interviews", admin, `{"candidatureId":"cand-1","jobOfferId":"job-2","date":"2025-03-10","time":"10:00"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeEnvelope(t, rec).Message, "assign a responsible first")
	})
}

func TestRouter_StaffReads(t *testing.T) {
	f := newFixture(t, nil)
	staff := f.bearer(t, "rec-1", domain.UserRoleRecruiter)
	list := []domain.InterviewWithJob{*sampleInterview(domain.InterviewStatusConfirmed)}

	f.interviews.On("ListUpcoming", mock.Anything, 3).Return(list, nil).Once()
	f.interviews.On("ListUpcoming", mock.Anything, 0).Return(list, nil).Once()
	f.interviews.On("ListByCandidature", mock.Anything, "cand-1").Return(list, nil).Once()
	f.interviews.On("ListByJobOffer", mock.Anything, "job-1").Return(list, nil).Once()
	f.interviews.On("ListByUser", mock.Anything, "resp-1").Return(list, nil).Once()
	f.interviews.On("GetInterview", mock.Anything, "iv-1").Return(sampleInterview(domain.InterviewStatusConfirmed), nil).Once()

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/interviews/upcoming?days=3", staff, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/interviews/upcoming", staff, "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/interviews/upcoming?days=abc", staff, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/interviews/candidature/cand-1", staff, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/interviews/job/job-1", staff, "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/interviews/user/resp-1", staff, "").Code)

	rec := f.do(http.MethodGet, "/api/interviews/iv-1", staff, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := string(decodeEnvelope(t, rec).Data)
	assert.Contains(t, body, `"candidateEmail":"ada@example.com"`)
	assert.NotContains(t, body, "cand-token")

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/interviews/iv-1", "", "").Code)
	f.interviews.AssertExpectations(t)
}

func TestRouter_Notifications(t *testing.T) {
	f := newFixture(t, nil)
	staff := f.bearer(t, "resp-1", domain.UserRoleResponsible)

	f.notifications.On("GetNotifications", mock.Anything, "resp-1", int32(2), int32(10)).
		Return([]domain.Notification{{ID: "n-1", RecipientID: "resp-1", Type: domain.NotificationInterviewScheduled, Title: "Interview to confirm"}}, int32(11), nil).Once()
	f.notifications.On("MarkAsRead", mock.Anything, "resp-1", "n-1").Return(nil).Once()
	f.notifications.On("MarkAsRead", mock.Anything, "resp-1", "n-404").Return(apperr.NotFound("notification not found")).Once()

	rec := f.do(http.MethodGet, "/api/notifications?page=2&pageSize=10", staff, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"total":11`)

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/notifications/n-1/read", staff, "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/notifications/n-404/read", staff, "").Code)
	f.notifications.AssertExpectations(t)
}

func TestRouter_Login(t *testing.T) {
	f := newFixture(t, nil)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	f.auth.On("Login", mock.Anything, "admin@example.com", "pw").
		Return("jwt-token", expires, &domain.User{ID: "admin-1", Name: "Admin", Role: domain.UserRoleAdmin}, nil).Once()
	f.auth.On("Login", mock.Anything, "admin@example.com", "bad").
		Return("", time.Time{}, nil, apperr.Unauthorized("invalid email or password")).Once()

	rec := f.do(http.MethodPost, "/api/auth/login", "", `{"email":"admin@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"accessToken":"jwt-token"`)

	rec = f.do(http.MethodPost, "/api/auth/login", "", `{"email":"admin@example.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", "", `{"email":"not-an-email","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	assert.Equal(t, http.StatusOK, newFixture(t, nil).do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, newFixture(t, errors.New("down")).do(http.MethodGet, "/healthz", "", "").Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", apperr.Validation("bad"), http.StatusBadRequest},
		{"NotFound", apperr.NotFound("gone"), http.StatusNotFound},
		{"IllegalTransition", apperr.IllegalTransition("stale"), http.StatusBadRequest},
		{"Unauthorized", apperr.Unauthorized("who"), http.StatusUnauthorized},
		{"Forbidden", apperr.Forbidden("no"), http.StatusForbidden},
		{"Configuration", apperr.Configuration("missing"), http.StatusInternalServerError},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apihttp.StatusFor(tt.err))
		})
	}
}

func TestRouter_TokensOnlyInAdminProjection(t *testing.T) {
	f := newFixture(t, nil)
	responsible := f.bearer(t, "other-resp", domain.UserRoleResponsible)
	admin := f.bearer(t, "admin-1", domain.UserRoleAdmin)
	list := []domain.InterviewWithJob{*sampleInterview(domain.InterviewStatusPendingCandidateConfirmation)}

	f.interviews.On("GetInterview", mock.Anything, "iv-1").Return(sampleInterview(domain.InterviewStatusPendingCandidateConfirmation), nil)
	f.interviews.On("ListByJobOffer", mock.Anything, "job-1").Return(list, nil)
	f.interviews.On("ListUpcoming", mock.Anything, 0).Return(list, nil)

	for _, path := range []string{"/api/interviews/iv-1", "/api/interviews/job/job-1", "/api/interviews/upcoming"} {
		t.Run("Responsible"+path, func(t *testing.T) {
			rec := f.do(http.MethodGet, path, responsible, "")
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.NotContains(t, body, "resp-token")
			assert.NotContains(t, body, "cand-token")
			assert.NotContains(t, body, "confirmationToken")
			assert.NotContains(t, body, "candidateToken")
		})

		t.Run("Admin"+path, func(t *testing.T) {
			rec := f.do(http.MethodGet, path, admin, "")
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `"confirmationToken":"resp-token"`)
			assert.Contains(t, body, `"candidateToken":"cand-token"`)
		})
	}
}
