package notification

import (
	"time"
)

// CreateNotificationRequest represents a request to append a notification
type CreateNotificationRequest struct {
	Type           NotificationType
	Message        string
	UserID         *string
	SenderID       string
	SenderName     string
	SenderAvatar   *string
	LeaveRequestID *int64
}

// ListNotificationsRequest selects a feed. Admin feed means broadcast notifications.
type ListNotificationsRequest struct {
	UserID    string
	AdminFeed bool
	Limit     int
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	UserID         *string          `json:"user_id"`
	SenderID       string           `json:"sender_id"`
	SenderName     string           `json:"sender_name"`
	SenderAvatar   *string          `json:"sender_avatar"`
	LeaveRequestID *int64           `json:"leave_request_id"`
	IsRead         bool             `json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}

func NewNotificationResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Message:        n.Message,
		UserID:         n.UserID,
		SenderID:       n.SenderID,
		SenderName:     n.SenderName,
		SenderAvatar:   n.SenderAvatar,
		LeaveRequestID: n.LeaveRequestID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// MarkAllReadResponse reports how many notifications changed state
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
