package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rktiwari00/woocart/internal/notification"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(n *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: n}
}

type NotificationListResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, NotificationListResponse{
		Notifications: h.notifications.Notifications(),
		UnreadCount:   h.notifications.UnreadCount(),
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notification_id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_id", "notification_id is required")
		return
	}

	h.notifications.MarkAsRead(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	h.notifications.MarkAllAsRead()
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notification_id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_id", "notification_id is required")
		return
	}

	h.notifications.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.notifications.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.notifications.Settings())
}

func (h *NotificationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings notification.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.notifications.UpdateSettings(settings)
	respondJSON(w, http.StatusOK, h.notifications.Settings())
}
