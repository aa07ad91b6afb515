package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
)

const uniqueViolation = "23505"

const interviewColumns = `id, candidature_id, job_offer_id, candidate_email, candidate_name,
	assigned_user_id, assigned_user_email, proposed_date, proposed_time, confirmed_date, confirmed_time,
	responsable_proposed_date, responsable_proposed_time, responsable_modification_notes,
	candidate_proposed_date, candidate_proposed_time, candidate_reschedule_reason,
	confirmation_token, candidate_token, status, admin_rejection_reason, cancellation_reason, created_by,
	created_at, updated_at, confirmed_at, modified_at, candidate_confirmed_at, candidate_reschedule_at,
	admin_approved_at, admin_rejected_at, cancelled_at`

type interviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) repository.InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, iv *domain.Interview) error {
	logger.EnterMethod("interviewRepository.Create", "candidatureID", iv.CandidatureID, "jobOfferID", iv.JobOfferID)

	query := `INSERT INTO interviews (id, candidature_id, job_offer_id, candidate_email, candidate_name,
	          assigned_user_id, assigned_user_email, proposed_date, proposed_time, confirmation_token,
	          status, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	logger.DatabaseCall("INSERT", "interviews", "interviewID", iv.ID)

	res, err := r.db.ExecContext(ctx, query,
		iv.ID, iv.CandidatureID, iv.JobOfferID, iv.CandidateEmail, iv.CandidateName,
		iv.AssignedUserID, iv.AssignedUserEmail, iv.ProposedDate, iv.ProposedTime, string(iv.ConfirmationToken),
		string(iv.Status), nullString(iv.CreatedBy), iv.CreatedAt, iv.UpdatedAt)
	var rows int64
	if res != nil {
		rows, _ = res.RowsAffected()
	}
	logger.DatabaseResult("INSERT", rows, err, "interviewID", iv.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateToken
		}
		logger.ExitMethodWithError("interviewRepository.Create", err, "interviewID", iv.ID)
		return err
	}
	logger.ExitMethod("interviewRepository.Create", "interviewID", iv.ID)
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	iv, err := scanInterview(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("interview %s not found", id)
	}
	return iv, err
}

func (r *interviewRepository) GetByResponsibleToken(ctx context.Context, token domain.ResponsibleToken) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE confirmation_token = $1`
	iv, err := scanInterview(r.db.QueryRowContext(ctx, query, string(token)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no interview for this confirmation link")
	}
	return iv, err
}

func (r *interviewRepository) GetByCandidateToken(ctx context.Context, token domain.CandidateToken) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE candidate_token = $1`
	iv, err := scanInterview(r.db.QueryRowContext(ctx, query, string(token)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("no interview for this candidate link")
	}
	return iv, err
}

// UpdateIfStatus writes every mutable column guarded by the expected status.
// The candidate token can only go from NULL to a value, never be replaced.
func (r *interviewRepository) UpdateIfStatus(ctx context.Context, iv *domain.Interview, expected domain.InterviewStatus) error {
	logger.EnterMethod("interviewRepository.UpdateIfStatus", "interviewID", iv.ID, "expected", expected, "next", iv.Status)

	var rp, cr staged
	if iv.ResponsibleProposal != nil {
		rp = staged{iv.ResponsibleProposal.Date, iv.ResponsibleProposal.Time, iv.ResponsibleProposal.Notes}
	}
	if iv.CandidateReschedule != nil {
		cr = staged{iv.CandidateReschedule.Date, iv.CandidateReschedule.Time, iv.CandidateReschedule.Reason}
	}

	query := `UPDATE interviews SET
	          proposed_date = $1, proposed_time = $2, confirmed_date = $3, confirmed_time = $4,
	          responsable_proposed_date = $5, responsable_proposed_time = $6, responsable_modification_notes = $7,
	          candidate_proposed_date = $8, candidate_proposed_time = $9, candidate_reschedule_reason = $10,
	          candidate_token = COALESCE(candidate_token, $11), status = $12,
	          admin_rejection_reason = $13, cancellation_reason = $14, updated_at = $15,
	          confirmed_at = $16, modified_at = $17, candidate_confirmed_at = $18, candidate_reschedule_at = $19,
	          admin_approved_at = $20, admin_rejected_at = $21, cancelled_at = $22
	          WHERE id = $23 AND status = $24`
	logger.DatabaseCall("UPDATE", "interviews", "interviewID", iv.ID)

	res, err := r.db.ExecContext(ctx, query,
		iv.ProposedDate, iv.ProposedTime, nullString(iv.ConfirmedDate), nullString(iv.ConfirmedTime),
		nullString(rp.date), nullString(rp.time), nullString(rp.text),
		nullString(cr.date), nullString(cr.time), nullString(cr.text),
		nullString(string(iv.CandidateToken)), string(iv.Status),
		nullString(iv.AdminRejectionReason), nullString(iv.CancellationReason), iv.UpdatedAt,
		nullTime(iv.ConfirmedAt), nullTime(iv.ModifiedAt), nullTime(iv.CandidateConfirmedAt), nullTime(iv.CandidateRescheduleAt),
		nullTime(iv.AdminApprovedAt), nullTime(iv.AdminRejectedAt), nullTime(iv.CancelledAt),
		iv.ID, string(expected))
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "interviewID", iv.ID)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateToken
		}
		logger.ExitMethodWithError("interviewRepository.UpdateIfStatus", err, "interviewID", iv.ID)
		return err
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "interviewID", iv.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.ExitMethod("interviewRepository.UpdateIfStatus", "interviewID", iv.ID, "result", "stale")
		return apperr.IllegalTransition("interview %s is no longer in status %s", iv.ID, expected)
	}
	logger.ExitMethod("interviewRepository.UpdateIfStatus", "interviewID", iv.ID)
	return nil
}

func (r *interviewRepository) ListByCandidature(ctx context.Context, candidatureID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE candidature_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, candidatureID)
}

func (r *interviewRepository) ListByJobOffer(ctx context.Context, jobOfferID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE job_offer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, jobOfferID)
}

func (r *interviewRepository) ListByAssignedUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE assigned_user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *interviewRepository) ListUpcoming(ctx context.Context, from, to string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
	          WHERE status <> 'CANCELLED'
	            AND COALESCE(confirmed_date, proposed_date) BETWEEN $1 AND $2
	          ORDER BY COALESCE(confirmed_date, proposed_date), COALESCE(confirmed_time, proposed_time)`
	return r.list(ctx, query, from, to)
}

// ListStale measures age from the later of the last transition and the last
// reminder, so each interview is reminded at most once per window.
func (r *interviewRepository) ListStale(ctx context.Context, status domain.InterviewStatus, olderThan time.Time) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE status = $1 AND GREATEST(updated_at, last_reminded_at) < $2
		ORDER BY updated_at`
	return r.list(ctx, query, string(status), olderThan)
}

func (r *interviewRepository) MarkReminded(ctx context.Context, id string, status domain.InterviewStatus, at time.Time) error {
	logger.DatabaseCall("UPDATE", "interviews", "interviewID", id, "column", "last_reminded_at")
	res, err := r.db.ExecContext(ctx,
		`UPDATE interviews SET last_reminded_at = $2 WHERE id = $1 AND status = $3`,
		id, at, string(status),
	)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "interviewID", id)
		return err
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "interviewID", id)
	return err
}

func (r *interviewRepository) list(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

type staged struct {
	date, time, text string
}

func scanInterview(row rowScanner) (*domain.Interview, error) {
	var (
		iv                        domain.Interview
		status, confirmationToken string
		proposedDate              time.Time

		confirmedDate, rpDate, crDate    sql.NullTime
		confirmedTime, rpTime, rpNotes   sql.NullString
		crTime, crReason, candidateToken sql.NullString
		rejectionReason, cancelReason    sql.NullString
		by                               sql.NullString

		confirmedAt, modifiedAt, candConfAt sql.NullTime
		candReschedAt, approvedAt           sql.NullTime
		rejectedAt, cancelledAt             sql.NullTime
	)
	err := row.Scan(&iv.ID, &iv.CandidatureID, &iv.JobOfferID, &iv.CandidateEmail, &iv.CandidateName,
		&iv.AssignedUserID, &iv.AssignedUserEmail, &proposedDate, &iv.ProposedTime, &confirmedDate, &confirmedTime,
		&rpDate, &rpTime, &rpNotes,
		&crDate, &crTime, &crReason,
		&confirmationToken, &candidateToken, &status, &rejectionReason, &cancelReason, &by,
		&iv.CreatedAt, &iv.UpdatedAt, &confirmedAt, &modifiedAt, &candConfAt, &candReschedAt,
		&approvedAt, &rejectedAt, &cancelledAt)
	if err != nil {
		return nil, err
	}

	iv.ProposedDate = proposedDate.Format(domain.DateLayout)
	iv.ConfirmedDate = formatDate(confirmedDate)
	iv.ConfirmedTime = confirmedTime.String
	iv.ConfirmationToken = domain.ResponsibleToken(confirmationToken)
	iv.CandidateToken = domain.CandidateToken(candidateToken.String)
	iv.Status = domain.InterviewStatus(status)
	iv.AdminRejectionReason = rejectionReason.String
	iv.CancellationReason = cancelReason.String
	iv.CreatedBy = by.String

	if rpDate.Valid {
		iv.ResponsibleProposal = &domain.ResponsibleProposal{Date: formatDate(rpDate), Time: rpTime.String, Notes: rpNotes.String}
	}
	if crDate.Valid {
		iv.CandidateReschedule = &domain.CandidateReschedule{Date: formatDate(crDate), Time: crTime.String, Reason: crReason.String}
	}

	iv.ConfirmedAt = timePtr(confirmedAt)
	iv.ModifiedAt = timePtr(modifiedAt)
	iv.CandidateConfirmedAt = timePtr(candConfAt)
	iv.CandidateRescheduleAt = timePtr(candReschedAt)
	iv.AdminApprovedAt = timePtr(approvedAt)
	iv.AdminRejectedAt = timePtr(rejectedAt)
	iv.CancelledAt = timePtr(cancelledAt)
	return &iv, nil
}
