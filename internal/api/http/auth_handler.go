package http

import (
	"net/http"
	"time"

	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Role        domain.UserRole `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := decode(w, r, &form); err != nil {
		writeError(w, r, err)
		return
	}
	token, expiresAt, user, err := h.svc.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Logged in", loginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
		Name:        user.Name,
		Role:        user.Role,
	})
}
