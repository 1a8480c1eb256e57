package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
)

type notificationRepository struct {
	s *Store
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) error {
	return r.s.run(ctx, func() error {
		r.s.notifications = append(r.s.notifications, n)
		return nil
	})
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	var found notification.Notification
	err := r.s.run(ctx, func() error {
		for _, n := range r.s.notifications {
			if n.ID == id {
				found = n
				return nil
			}
		}
		return notification.ErrNotificationNotFound
	})
	return found, err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	return r.newestFirst(ctx, limit, func(n notification.Notification) bool {
		return n.UserID != nil && *n.UserID == userID
	})
}

func (r *notificationRepository) ListBroadcast(ctx context.Context, limit int) ([]notification.Notification, error) {
	return r.newestFirst(ctx, limit, notification.Notification.IsBroadcast)
}

// newestFirst relies on notifications being appended in creation order.
func (r *notificationRepository) newestFirst(ctx context.Context, limit int, keep func(notification.Notification) bool) ([]notification.Notification, error) {
	var out []notification.Notification
	err := r.s.run(ctx, func() error {
		for i := len(r.s.notifications) - 1; i >= 0; i-- {
			n := r.s.notifications[i]
			if !keep(n) {
				continue
			}
			out = append(out, n)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.s.run(ctx, func() error {
		for i, n := range r.s.notifications {
			if n.ID == id {
				n.IsRead = true
				r.s.notifications[i] = n
				return nil
			}
		}
		return notification.ErrNotificationNotFound
	})
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string, includeBroadcast bool) (int64, error) {
	var updated int64
	err := r.s.run(ctx, func() error {
		for i, n := range r.s.notifications {
			if n.IsRead {
				continue
			}
			own := n.UserID != nil && *n.UserID == userID
			if own || (includeBroadcast && n.IsBroadcast()) {
				n.IsRead = true
				r.s.notifications[i] = n
				updated++
			}
		}
		return nil
	})
	return updated, err
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.s.run(ctx, func() error {
		kept := make([]notification.Notification, 0, len(r.s.notifications))
		for _, n := range r.s.notifications {
			if n.IsRead && n.CreatedAt.Before(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, n)
		}
		r.s.notifications = kept
		return nil
	})
	return deleted, err
}
