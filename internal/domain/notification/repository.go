package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)
	// ListByUser returns the user's own notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	// ListBroadcast returns notifications addressed to admins, newest first.
	ListBroadcast(ctx context.Context, limit int) ([]Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string, includeBroadcast bool) (int64, error)
	// DeleteReadBefore removes read notifications created before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
