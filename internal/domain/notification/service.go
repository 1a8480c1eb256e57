package notification

import (
	"context"
	"time"
)

// Service defines the notification service interface
type Service interface {
	// Notify appends a notification using the transaction carried by ctx, if any.
	Notify(ctx context.Context, req CreateNotificationRequest) (Notification, error)

	List(ctx context.Context, req ListNotificationsRequest) ([]NotificationResponse, error)
	MarkAsRead(ctx context.Context, userID string, isAdmin bool, id string) error
	MarkAllAsRead(ctx context.Context, userID string, isAdmin bool) (MarkAllReadResponse, error)

	// PruneRead deletes read notifications older than retention. Unread ones are kept.
	PruneRead(ctx context.Context, retention time.Duration) (int64, error)
}
