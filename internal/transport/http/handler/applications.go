package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/application"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// ApplicationHandler handles the application lifecycle endpoints.
type ApplicationHandler struct {
	svc application.Service
}

func NewApplicationHandler(svc application.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Apply accepts either a JSON body or a multipart form with an optional "cv"
// file part. With multipart, the remaining fields ride along as form values.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req domain.ApplyRequest
	var cv *application.CVUpload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		req.JobID = r.FormValue("job_id")
		req.CoverLetter = r.FormValue("cover_letter")
		if file, header, err := r.FormFile("cv"); err == nil {
			defer file.Close()
			cv = &application.CVUpload{Filename: header.Filename, Data: file}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := h.svc.Apply(r.Context(), actor, req, cv)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	app, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) ListByJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.ListByJob(r.Context(), actor, chi.URLParam(r, "jobID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, apps, len(apps))
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.ListMine(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, apps, len(apps))
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.svc.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.svc.ScheduleInterview(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	app, err := h.svc.AddNote(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *ApplicationHandler) DownloadCV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	rc, key, err := h.svc.DownloadCV(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	_, _ = io.Copy(w, rc)
}
