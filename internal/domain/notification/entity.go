package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveRequest          NotificationType = "leave_request"
	TypeLeaveApproved         NotificationType = "leave_approved"
	TypeLeaveRejected         NotificationType = "leave_rejected"
	TypeLeaveCancelled        NotificationType = "leave_cancelled"
	TypeCancellationRequest   NotificationType = "cancellation_request"
	TypeCancellationApproved  NotificationType = "cancellation_approved"
	TypeCancellationRejected  NotificationType = "cancellation_rejected"
	TypeLeaveDocumentUploaded NotificationType = "leave_document_uploaded"
)

// Notification represents a notification entity. A nil UserID is a broadcast
// to every admin.
type Notification struct {
	ID             string
	Type           NotificationType
	Message        string
	UserID         *string
	SenderID       string
	SenderName     string
	SenderAvatar   *string
	LeaveRequestID *int64
	IsRead         bool
	CreatedAt      time.Time
}

func (n Notification) IsBroadcast() bool {
	return n.UserID == nil
}
