package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/profile"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// ProfileHandler handles jobseeker profile endpoints.
type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler { return &ProfileHandler{svc: svc} }

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Upsert(r.Context(), actor.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.GetMine(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, profiles, len(profiles))
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), actor.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "profile deleted")
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.EducationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.AddEducation(r.Context(), actor.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.DeleteEducation(r.Context(), actor.UserID, chi.URLParam(r, "eduID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.AddExperience(r.Context(), actor.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.DeleteExperience(r.Context(), actor.UserID, chi.URLParam(r, "expID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) UploadCV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("cv")
	if err != nil {
		writeError(w, http.StatusBadRequest, "cv file is required")
		return
	}
	defer file.Close()

	p, err := h.svc.UploadCV(r.Context(), actor.UserID, header.Filename, file)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *ProfileHandler) DeleteCV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.DeleteCV(r.Context(), actor.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "cv deleted")
}

func (h *ProfileHandler) DownloadCV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rc, key, err := h.svc.GetCV(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	_, _ = io.Copy(w, rc)
}
