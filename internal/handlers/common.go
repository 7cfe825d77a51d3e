package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dating-backend/internal/services"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the {status, message} envelope of health and decision routes
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse acknowledges a write
type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondStatus(w http.ResponseWriter, statusCode int, status, message string) {
	respondJSON(w, statusCode, StatusResponse{Status: status, Message: message})
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// classify maps a service error to an HTTP status and a message that is safe
// to show to clients. Full details only go to the log.
func classify(err error, notFound string) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		if reason, ok := services.Reason(err); ok {
			return http.StatusBadRequest, reason
		}
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict, "Date has already been decided"
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusServiceUnavailable, "Service unavailable"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// logServiceError logs err at a level matching its class
func logServiceError(r *http.Request, err error, code int) {
	var ev *zerolog.Event
	if code >= http.StatusInternalServerError {
		ev = log.Error()
	} else {
		ev = log.Debug()
	}
	ev.Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("code", code).
		Msg("Request failed")
}

// writeServiceError writes a {error} body for err
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	code, msg := classify(err, notFound)
	logServiceError(r, err, code)
	respondError(w, msg, code)
}

// writeStatusError writes a {status:"error", message} body for err
func writeStatusError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	code, msg := classify(err, notFound)
	logServiceError(r, err, code)
	respondStatus(w, code, "error", msg)
}
