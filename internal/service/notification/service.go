package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	FeedLimit int // default: 50
}

type service struct {
	repo   notification.Repository
	config Config
	now    func() time.Time
}

// NewNotificationService creates a notification service that appends
// synchronously, inside whatever transaction the caller's context carries.
func NewNotificationService(repo notification.Repository, cfg Config) notification.Service {
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = 50
	}
	return &service{
		repo:   repo,
		config: cfg,
		now:    time.Now,
	}
}

// Notify appends one notification
func (s *service) Notify(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	if req.Message == "" {
		return notification.Notification{}, notification.ErrEmptyMessage
	}

	n := notification.Notification{
		ID:             uuid.New().String(),
		Type:           req.Type,
		Message:        req.Message,
		UserID:         req.UserID,
		SenderID:       req.SenderID,
		SenderName:     req.SenderName,
		SenderAvatar:   req.SenderAvatar,
		LeaveRequestID: req.LeaveRequestID,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return notification.Notification{}, err
	}

	slog.DebugContext(ctx, "Notification appended", "id", n.ID, "type", n.Type, "broadcast", n.IsBroadcast())
	return n, nil
}

// List returns a feed newest first, capped at the configured limit
func (s *service) List(ctx context.Context, req notification.ListNotificationsRequest) ([]notification.NotificationResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > s.config.FeedLimit {
		limit = s.config.FeedLimit
	}

	var (
		items []notification.Notification
		err   error
	)
	if req.AdminFeed {
		items, err = s.repo.ListBroadcast(ctx, limit)
	} else {
		items, err = s.repo.ListByUser(ctx, req.UserID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, notification.NewNotificationResponse(n))
	}
	return responses, nil
}

// MarkAsRead marks a single notification as read. Users may only touch their
// own notifications; admins may also touch broadcasts.
func (s *service) MarkAsRead(ctx context.Context, userID string, isAdmin bool, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	own := n.UserID != nil && *n.UserID == userID
	if !own && !(isAdmin && n.IsBroadcast()) {
		return notification.ErrUnauthorized
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks the caller's notifications, plus the admin feed for admins
func (s *service) MarkAllAsRead(ctx context.Context, userID string, isAdmin bool) (notification.MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID, isAdmin)
	if err != nil {
		return notification.MarkAllReadResponse{}, err
	}
	return notification.MarkAllReadResponse{Updated: updated}, nil
}

// PruneRead implements notification.Service. A non-positive retention keeps everything.
func (s *service) PruneRead(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-retention)
	deleted, err := s.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "Pruned read notifications", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
