package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const notificationColumns = `id, type, message, user_id, sender_id, sender_name, sender_avatar,
	leave_request_id, is_read, created_at`

type notificationRepositoryImpl struct {
	db database.Querier
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Querier) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var (
		n       notification.Notification
		notType string
	)
	err := row.Scan(
		&n.ID,
		&notType,
		&n.Message,
		&n.UserID,
		&n.SenderID,
		&n.SenderName,
		&n.SenderAvatar,
		&n.LeaveRequestID,
		&n.IsRead,
		&n.CreatedAt,
	)
	n.Type = notification.NotificationType(notType)
	return n, err
}

// Create inserts a new notification
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		n.ID,
		string(n.Type),
		n.Message,
		n.UserID,
		n.SenderID,
		n.SenderName,
		n.SenderAvatar,
		n.LeaveRequestID,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", translatePgError(err))
	}
	return nil
}

// GetByID retrieves a notification by ID
func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification: %w", translatePgError(err))
	}
	return n, nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *notificationRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, userID, limit)
}

// ListBroadcast retrieves the admin feed, newest first
func (r *notificationRepositoryImpl) ListBroadcast(ctx context.Context, limit int) ([]notification.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *notificationRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", translatePgError(err))
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkAsRead marks one notification as read
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks the user's notifications, and optionally the admin feed, as read
func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID string, includeBroadcast bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE is_read = FALSE AND (user_id = $1 OR ($2 AND user_id IS NULL))
	`

	tag, err := q.Exec(ctx, query, userID, includeBroadcast)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", translatePgError(err))
	}
	return tag.RowsAffected(), nil
}

// DeleteReadBefore removes read notifications older than cutoff
func (r *notificationRepositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", translatePgError(err))
	}
	return tag.RowsAffected(), nil
}
