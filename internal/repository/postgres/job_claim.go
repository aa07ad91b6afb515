package postgres

import (
	"context"
	"database/sql"

	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
)

type jobClaimRepository struct {
	db *sql.DB
}

func NewJobClaimRepository(db *sql.DB) repository.JobClaimRepository {
	return &jobClaimRepository{db: db}
}

// Claim reports whether owner won the (jobName, period) slot. A slot already
// held by anyone, owner included, yields false.
func (r *jobClaimRepository) Claim(ctx context.Context, jobName, period, owner string) (bool, error) {
	query := `INSERT INTO job_claims (job_name, period, owner) VALUES ($1, $2, $3)
	          ON CONFLICT (job_name, period) DO NOTHING`
	logger.DatabaseCall("INSERT", "job_claims", "job", jobName, "period", period)

	res, err := r.db.ExecContext(ctx, query, jobName, period, owner)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "job", jobName)
		return false, err
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("INSERT", rows, err, "job", jobName)
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
