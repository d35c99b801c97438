package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/message"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// MessageHandler handles direct messaging endpoints.
type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler { return &MessageHandler{svc: svc} }

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Send(r.Context(), actor.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, m)
}

func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	convs, err := h.svc.Conversations(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, convs, len(convs))
}

func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	msgs, err := h.svc.Conversation(r.Context(), actor.UserID, chi.URLParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, msgs, len(msgs))
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	n, err := h.svc.MarkRead(r.Context(), actor.UserID, chi.URLParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"marked_read": n})
}
