package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/job"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	svc job.Service
}

func NewJobHandler(svc job.Service) *JobHandler { return &JobHandler{svc: svc} }

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	j, err := h.svc.Create(r.Context(), actor, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, j)
}

// List returns a page of active jobs. Pagination is cursor based: pass the
// next_cursor of a previous response as ?cursor= to continue.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")

	jobs, nextCursor, err := h.svc.List(r.Context(), int32(limit), cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	count := len(jobs)
	writeJSON(w, http.StatusOK, struct {
		Envelope
		NextCursor string `json:"next_cursor,omitempty"`
	}{
		Envelope:   Envelope{Success: true, Data: jobs, Count: &count},
		NextCursor: nextCursor,
	})
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	jobs, err := h.svc.ListMine(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, jobs, len(jobs))
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	j, err := h.svc.Update(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (h *JobHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	j, err := h.svc.ChangeStatus(r.Context(), actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "job deleted")
}
