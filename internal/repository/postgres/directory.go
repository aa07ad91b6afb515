package postgres

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/repository"
)

type jobOfferRepository struct {
	db *sql.DB
}

func NewJobOfferRepository(db *sql.DB) repository.JobOfferRepository {
	return &jobOfferRepository{db: db}
}

func (r *jobOfferRepository) GetByID(ctx context.Context, id string) (*domain.JobOffer, error) {
	jo := &domain.JobOffer{}
	var assigned sql.NullString
	query := `SELECT id, title, assigned_user_id FROM job_offers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&jo.ID, &jo.Title, &assigned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("job offer %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	jo.AssignedUserID = assigned.String
	return jo, nil
}

type candidatureRepository struct {
	db *sql.DB
}

func NewCandidatureRepository(db *sql.DB) repository.CandidatureRepository {
	return &candidatureRepository{db: db}
}

func (r *candidatureRepository) GetByID(ctx context.Context, id string) (*domain.Candidature, error) {
	c := &domain.Candidature{}
	query := `SELECT id, job_offer_id, candidate_name, candidate_email FROM candidatures WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.JobOfferID, &c.CandidateName, &c.CandidateEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("candidature %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
