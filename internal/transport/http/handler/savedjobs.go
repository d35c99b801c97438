package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/savedjob"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// SavedJobHandler handles job bookmark endpoints.
type SavedJobHandler struct {
	svc savedjob.Service
}

func NewSavedJobHandler(svc savedjob.Service) *SavedJobHandler {
	return &SavedJobHandler{svc: svc}
}

func (h *SavedJobHandler) Save(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	saved, err := h.svc.Save(r.Context(), actor.UserID, chi.URLParam(r, "jobID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, saved)
}

func (h *SavedJobHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Unsave(r.Context(), actor.UserID, chi.URLParam(r, "jobID")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "job unsaved")
}

func (h *SavedJobHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	saved, err := h.svc.List(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, saved, len(saved))
}
