package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
)

type NotificationJobs struct {
	notificationSvc notification.Service
	retention       time.Duration
}

func NewNotificationJobs(notificationSvc notification.Service, retention time.Duration) *NotificationJobs {
	return &NotificationJobs{
		notificationSvc: notificationSvc,
		retention:       retention,
	}
}

// PruneRead drops read notifications past the retention period.
func (j *NotificationJobs) PruneRead(ctx context.Context) error {
	_, err := j.notificationSvc.PruneRead(ctx, j.retention)
	return err
}

// Register adds the notification jobs to s. Nothing is registered when
// retention is disabled.
func (j *NotificationJobs) Register(s *Scheduler, interval time.Duration) {
	if j.retention <= 0 {
		return
	}
	s.AddJob("prune_read_notifications", interval, j.PruneRead)
}
