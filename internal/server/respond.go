package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kolah/plugforge/internal/engine"
	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/platform"
	"github.com/kolah/plugforge/internal/session"
	"github.com/kolah/plugforge/middleware"
)

type errorResponse struct {
	Error   string              `json:"error"`
	Details []middleware.Detail `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	var parseErr *loader.ParseError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, platform.ErrPlatformNotSupported),
		errors.Is(err, session.ErrInvalidChoice),
		errors.Is(err, loader.ErrUnsupportedSource):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	event := s.logger.Debug()
	if status >= http.StatusInternalServerError {
		event = s.logger.Warn()
	}
	event.Str("path", r.URL.Path).Int("status", status).Err(err).Msg("Request failed")
	writeError(w, status, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
