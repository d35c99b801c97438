package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/notification"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// NotificationHandler handles the notification inbox endpoints.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	inbox, err := h.svc.List(r.Context(), actor.UserID, int32(limit))
	if err != nil {
		httpError(w, err)
		return
	}
	count := len(inbox.Notifications)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: inbox, Count: &count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	n, err := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "id"), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.MarkAllAsRead(r.Context(), actor.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "all notifications marked as read")
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), actor.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "notification deleted")
}
