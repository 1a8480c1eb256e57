package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/notification"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
	}
}

// List returns the caller's notifications, or the broadcast feed for
// admins passing scope=admin.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	adminFeed := r.URL.Query().Get("scope") == "admin"
	if adminFeed && !actor.IsAdmin {
		response.HandleError(w, leave.ErrAdminOnly)
		return
	}

	res, err := h.notifService.List(r.Context(), notification.ListNotificationsRequest{
		UserID:    actor.ID,
		AdminFeed: adminFeed,
		Limit:     getIntQueryParam(r, "limit", 0),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, res, &response.Meta{TotalItems: len(res)})
}

// MarkAsRead marks a single notification as read
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notifService.MarkAsRead(r.Context(), actor.ID, actor.IsAdmin, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// MarkAllAsRead marks all notifications as read
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	res, err := h.notifService.MarkAllAsRead(r.Context(), actor.ID, actor.IsAdmin)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", res)
}
