package httpx

import (
	"net/http"

	"github.com/jobdeck/jobdeck-api/internal/service"
)

// NotificationHandlers provides HTTP handlers for the notification feed.
type NotificationHandlers struct {
	Svc *service.NotificationService
}

// List handles GET /api/notifications for the calling recipient.
func (h *NotificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	limit, offset := ParseLimitOffset(r, 50, 200)
	notifications, err := h.Svc.List(r.Context(), caller.ID, limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications, "count": len(notifications)})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	if err := h.Svc.MarkRead(r.Context(), r.PathValue("id"), caller.ID); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// UnreadCount handles GET /api/notifications/unread_count.
func (h *NotificationHandlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, _ := IdentityFromContext(r.Context())

	count, err := h.Svc.UnreadCount(r.Context(), caller.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"unread": count})
}
