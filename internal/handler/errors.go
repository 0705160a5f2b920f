package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/timetravel/internal/domain"
)

// errorResponse is the body of every error reply. Description is either a
// message or, for field validation failures, a field → message map.
type errorResponse struct {
	Description any `json:"description"`
}

// requestError is a failure detected by the handler before the service runs:
// a malformed body, path id or query parameter.
type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *requestError) Unwrap() error { return e.err }

func badRequest(message string, err error) *requestError {
	return &requestError{status: http.StatusBadRequest, message: message, err: err}
}

// writeError is the single place that turns an error into a status code and
// an error body. Causes of 500s are logged and never echoed to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rerr *requestError
		verr *domain.ValidationError
		perr *domain.ParadoxError
		nerr *domain.NotFoundError
	)

	switch {
	case errors.As(err, &rerr):
		s.log.InfoContext(r.Context(), "invalid request", "path", r.URL.Path, "error", err)
		writeJSON(w, rerr.status, errorResponse{Description: rerr.message})
	case errors.As(err, &verr):
		s.log.InfoContext(r.Context(), "request validation failed", "path", r.URL.Path, "fields", verr.Fields)
		writeJSON(w, http.StatusBadRequest, errorResponse{Description: verr.Fields})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusConflict, errorResponse{Description: perr.Error()})
	case errors.As(err, &nerr):
		s.log.InfoContext(r.Context(), "travel not found", "path", r.URL.Path)
		writeJSON(w, http.StatusNotFound, errorResponse{Description: nerr.Error()})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Description: "internal server error"})
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
