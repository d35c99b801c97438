package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/company"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/pkg/validate"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

// CompanyHandler handles employer company profile endpoints.
type CompanyHandler struct {
	svc company.Service
}

func NewCompanyHandler(svc company.Service) *CompanyHandler { return &CompanyHandler{svc: svc} }

func (h *CompanyHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CompanyInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Upsert(r.Context(), actor.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *CompanyHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	c, err := h.svc.GetMine(r.Context(), actor.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeList(w, companies, len(companies))
}

func (h *CompanyHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "logo file is required")
		return
	}
	defer file.Close()

	c, err := h.svc.UploadLogo(r.Context(), actor.UserID, header.Filename, file)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}
