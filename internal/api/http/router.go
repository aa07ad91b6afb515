package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Interviews    *InterviewHandler
	Auth          *AuthHandler
	Notifications *NotificationHandler
	Health        *HealthHandler
}

// NewRouter registers every route under the name used by
// config.RouteSecurityConfig. Literal segments are registered before the
// /api/interviews/{id} catch-all.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(AccessLog, auth.Handler)

	r.HandleFunc("/healthz", h.Health.Healthz).Methods(http.MethodGet).Name("Healthz")
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("Login")

	iv := h.Interviews
	r.HandleFunc("/api/interviews/responsible/{token}", iv.GetForResponsible).Methods(http.MethodGet).Name("GetInterviewForResponsible")
	r.HandleFunc("/api/interviews/responsible/{token}/confirm", iv.ConfirmByResponsible).Methods(http.MethodPost).Name("ConfirmInterviewByResponsible")
	r.HandleFunc("/api/interviews/responsible/{token}/modify", iv.ModifyByResponsible).Methods(http.MethodPost).Name("ModifyInterviewByResponsible")

	r.HandleFunc("/api/interviews/candidate/{token}", iv.GetForCandidate).Methods(http.MethodGet).Name("GetInterviewForCandidate")
	r.HandleFunc("/api/interviews/candidate/{token}/confirm", iv.ConfirmByCandidate).Methods(http.MethodPost).Name("ConfirmInterviewByCandidate")
	r.HandleFunc("/api/interviews/candidate/{token}/reschedule", iv.RescheduleByCandidate).Methods(http.MethodPost).Name("RescheduleInterviewByCandidate")

	r.HandleFunc("/api/interviews/upcoming", iv.ListUpcoming).Methods(http.MethodGet).Name("ListUpcomingInterviews")
	r.HandleFunc("/api/interviews/candidature/{id}", iv.ListByCandidature).Methods(http.MethodGet).Name("ListInterviewsByCandidature")
	r.HandleFunc("/api/interviews/job/{id}", iv.ListByJobOffer).Methods(http.MethodGet).Name("ListInterviewsByJobOffer")
	r.HandleFunc("/api/interviews/user/{id}", iv.ListByUser).Methods(http.MethodGet).Name("ListInterviewsByUser")

	r.HandleFunc("/api/interviews", iv.Schedule).Methods(http.MethodPost).Name("ScheduleInterview")
	r.HandleFunc("/api/interviews/{id}", iv.Get).Methods(http.MethodGet).Name("GetInterview")
	r.HandleFunc("/api/interviews/{id}/approve", iv.Approve).Methods(http.MethodPost).Name("ApproveInterviewChange")
	r.HandleFunc("/api/interviews/{id}/reject", iv.Reject).Methods(http.MethodPost).Name("RejectInterviewChange")
	r.HandleFunc("/api/interviews/{id}/accept-reschedule", iv.AcceptReschedule).Methods(http.MethodPost).Name("AcceptCandidateReschedule")
	r.HandleFunc("/api/interviews/{id}/decline-reschedule", iv.DeclineReschedule).Methods(http.MethodPost).Name("DeclineCandidateReschedule")
	r.HandleFunc("/api/interviews/{id}/cancel", iv.Cancel).Methods(http.MethodPost).Name("CancelInterview")

	r.HandleFunc("/api/notifications", h.Notifications.List).Methods(http.MethodGet).Name("ListNotifications")
	r.HandleFunc("/api/notifications/{id}/read", h.Notifications.MarkAsRead).Methods(http.MethodPost).Name("MarkNotificationAsRead")

	return r
}
