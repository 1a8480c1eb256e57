package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNotify_RequiresMessage(t *testing.T) {
	svc := NewNotificationService(memory.NewStore().Notifications(), Config{})

	_, err := svc.Notify(context.Background(), notification.CreateNotificationRequest{Type: notification.TypeLeaveRequest})
	assert.ErrorIs(t, err, notification.ErrEmptyMessage)
}

func TestList_NewestFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), Config{FeedLimit: 3})

	for i := 1; i <= 5; i++ {
		_, err := svc.Notify(ctx, notification.CreateNotificationRequest{
			Type:    notification.TypeLeaveApproved,
			Message: fmt.Sprintf("message %d", i),
			UserID:  strPtr("E1"),
		})
		require.NoError(t, err)
	}
	_, err := svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveRequest, Message: "broadcast"})
	require.NoError(t, err)

	inbox, err := svc.List(ctx, notification.ListNotificationsRequest{UserID: "E1", Limit: 100})
	require.NoError(t, err)
	require.Len(t, inbox, 3)
	assert.Equal(t, "message 5", inbox[0].Message)
	assert.Equal(t, "message 3", inbox[2].Message)

	feed, err := svc.List(ctx, notification.ListNotificationsRequest{AdminFeed: true})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "broadcast", feed[0].Message)
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), Config{})

	own, err := svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveApproved, Message: "approved", UserID: strPtr("E1")})
	require.NoError(t, err)
	broadcast, err := svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveRequest, Message: "applied"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, "E2", false, own.ID), notification.ErrUnauthorized)
	assert.ErrorIs(t, svc.MarkAsRead(ctx, "E1", false, broadcast.ID), notification.ErrUnauthorized)
	assert.ErrorIs(t, svc.MarkAsRead(ctx, "E1", false, "missing"), notification.ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(ctx, "E1", false, own.ID))
	require.NoError(t, svc.MarkAsRead(ctx, "A1", true, broadcast.ID))
	// idempotent
	require.NoError(t, svc.MarkAsRead(ctx, "E1", false, own.ID))

	inbox, err := svc.List(ctx, notification.ListNotificationsRequest{UserID: "E1"})
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].IsRead)
}

func TestMarkAllAsRead(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), Config{})

	for _, req := range []notification.CreateNotificationRequest{
		{Type: notification.TypeLeaveApproved, Message: "a", UserID: strPtr("E1")},
		{Type: notification.TypeLeaveRejected, Message: "b", UserID: strPtr("E1")},
		{Type: notification.TypeLeaveApproved, Message: "c", UserID: strPtr("E2")},
		{Type: notification.TypeLeaveRequest, Message: "d"},
	} {
		_, err := svc.Notify(ctx, req)
		require.NoError(t, err)
	}

	res, err := svc.MarkAllAsRead(ctx, "E1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Updated)

	res, err = svc.MarkAllAsRead(ctx, "A1", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Updated)

	res, err = svc.MarkAllAsRead(ctx, "E1", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Updated)
}

func TestPruneRead_KeepsUnreadAndRecent(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewStore().Notifications(), Config{}).(*service)

	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	oldRead, err := svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveApproved, Message: "old read", UserID: strPtr("E1")})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveApproved, Message: "old unread", UserID: strPtr("E1")})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAsRead(ctx, "E1", false, oldRead.ID))

	clock = clock.Add(40 * 24 * time.Hour)
	recent, err := svc.Notify(ctx, notification.CreateNotificationRequest{Type: notification.TypeLeaveApproved, Message: "recent read", UserID: strPtr("E1")})
	require.NoError(t, err)
	require.NoError(t, svc.MarkAsRead(ctx, "E1", false, recent.ID))

	deleted, err := svc.PruneRead(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = svc.PruneRead(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	inbox, err := svc.List(ctx, notification.ListNotificationsRequest{UserID: "E1"})
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "recent read", inbox[0].Message)
	assert.Equal(t, "old unread", inbox[1].Message)
}
