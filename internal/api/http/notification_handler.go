package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type notificationPage struct {
	Items []NotificationView `json:"items"`
	Total int32              `json:"total"`
	Page  int32              `json:"page"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Unauthorized("not signed in"))
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 20)

	notes, total, err := h.svc.GetNotifications(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items := make([]NotificationView, 0, len(notes))
	for _, n := range notes {
		items = append(items, MapNotification(n))
	}
	writeOK(w, "Notifications", notificationPage{Items: items, Total: total, Page: page})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Unauthorized("not signed in"))
		return
	}
	if err := h.svc.MarkAsRead(r.Context(), claims.UserID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Notification marked as read", nil)
}

func queryInt32(r *http.Request, key string, def int32) int32 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n < 1 {
		return def
	}
	return int32(n)
}
