package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
	"hireflow-backend/internal/security"
)

var ErrInvalidCredentials = apperr.Unauthorized("invalid email or password")

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.User, error) {
	logger.EnterMethod("authService.Login", "email", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			// Same answer as a wrong password.
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.ExitMethod("authService.Login", "userID", user.ID, "result", "bad password")
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenManager.GenerateAccessToken(user)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "userID", user.ID)
		return "", time.Time{}, nil, err
	}
	logger.ExitMethod("authService.Login", "userID", user.ID, "role", user.Role)
	return token, expiresAt, user, nil
}
