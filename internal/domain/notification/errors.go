package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUnauthorized         = errors.New("unauthorized to access this notification")
	ErrEmptyMessage         = errors.New("notification message is required")
)
