package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "recipientID", n.RecipientID, "type", n.Type)

	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "reason", "failed to marshal metadata")
		return err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO notifications (id, recipient_id, type, title, message, link, metadata, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	logger.DatabaseCall("INSERT", "notifications", "recipientID", n.RecipientID)

	_, err = r.db.ExecContext(ctx, query, n.ID, n.RecipientID, string(n.Type), n.Title, n.Message,
		nullString(n.Link), meta, n.IsRead, n.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "recipientID", n.RecipientID)
	} else {
		logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	}
	return err
}

// CreateForRole copies note to every user holding role in a single statement.
// The returned count is the number of copies stored.
func (r *notificationRepository) CreateForRole(ctx context.Context, role domain.UserRole, n *domain.Notification) (int64, error) {
	logger.EnterMethod("notificationRepository.CreateForRole", "role", role, "type", n.Type)

	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		return 0, err
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `INSERT INTO notifications (id, recipient_id, type, title, message, link, metadata, is_read, created_at)
	          SELECT gen_random_uuid()::text, u.id, $1, $2, $3, $4, $5, FALSE, $6
	          FROM users u WHERE u.role = $7`
	logger.DatabaseCall("INSERT", "notifications", "role", role)

	res, err := r.db.ExecContext(ctx, query, string(n.Type), n.Title, n.Message, nullString(n.Link), meta, createdAt, string(role))
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "role", role)
		logger.ExitMethodWithError("notificationRepository.CreateForRole", err, "role", role)
		return 0, err
	}
	rows, err := res.RowsAffected()
	logger.DatabaseResult("INSERT", rows, err, "role", role)
	logger.ExitMethod("notificationRepository.CreateForRole", "role", role, "copies", rows)
	return rows, err
}

func (r *notificationRepository) List(ctx context.Context, recipientID string, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE recipient_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, recipientID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, recipient_id, type, title, message, COALESCE(link, ''), metadata, is_read, created_at
	          FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		var meta []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &typ, &n.Title, &n.Message, &n.Link, &meta, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		n.Type = domain.NotificationType(typ)
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &n.Metadata); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("notification %s not found", id)
	}
	return nil
}
