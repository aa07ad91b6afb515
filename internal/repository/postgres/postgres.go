package postgres

import (
	"context"
	"database/sql"

	"hireflow-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.InterviewRepository
	repository.NotificationRepository
	repository.UserRepository
	repository.JobOfferRepository
	repository.CandidatureRepository
	repository.JobClaimRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		InterviewRepository:    NewInterviewRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		UserRepository:         NewUserRepository(db),
		JobOfferRepository:     NewJobOfferRepository(db),
		CandidatureRepository:  NewCandidatureRepository(db),
		JobClaimRepository:     NewJobClaimRepository(db),
	}
}

// Ping checks that the database behind the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
