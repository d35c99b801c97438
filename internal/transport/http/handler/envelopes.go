package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobboard-api/internal/domain"
)

// Envelope is the uniform response wrapper. Every endpoint answers with it:
// success plus data (and count for lists) on the happy path, success=false
// plus error otherwise.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes. Conflicts are
// reported as 400 like any other rejected input. Unclassified errors become
// an opaque 500 so internals never leak to clients.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
