package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/royal-shore/core-banking/internal/domain"
)

const notificationColumns = `
	id,
	user_id,
	type,
	priority,
	title,
	message,
	is_read,
	read_at,
	transaction_id,
	created_at`

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	const query = `
INSERT INTO notifications (user_id, type, priority, title, message, transaction_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		n.UserID,
		n.Type,
		n.Priority,
		n.Title,
		n.Message,
		n.TransactionID,
	).Scan(&n.ID, &n.CreatedAt); err != nil {
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n      domain.Notification
			readAt sql.NullTime
			txnID  sql.NullString
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Priority,
			&n.Title,
			&n.Message,
			&n.IsRead,
			&readAt,
			&txnID,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.ReadAt = nullTimePtr(readAt)
		n.TransactionID = nullStringPtr(txnID)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications rows: %w", err)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	const query = `
UPDATE notifications
SET is_read = TRUE, read_at = NOW()
WHERE id = $1 AND user_id = $2 AND is_read = FALSE`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const query = `
UPDATE notifications
SET is_read = TRUE, read_at = NOW()
WHERE user_id = $1 AND is_read = FALSE`

	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read rows affected: %w", err)
	}
	return rows, nil
}
