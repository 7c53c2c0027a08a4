package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"truthlens/internal/detection"
	"truthlens/pkg/logger"
)

// Error codes returned in ErrorResponse
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeTimeout        = "TIMEOUT"
	CodeInternal       = "INTERNAL_ERROR"
	CodeUnavailable    = "UNAVAILABLE"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		ErrorCode: code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeServiceError maps a service error onto a status code
func writeServiceError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, detection.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case errors.Is(err, context.DeadlineExceeded):
		if r.Context().Err() != nil {
			// the timeout middleware owns the reply once the request deadline passes
			log.Debug().Err(err).Msg("request deadline exceeded")
			return
		}
		writeError(w, r, http.StatusGatewayTimeout, "request timed out", CodeTimeout)
	case errors.Is(err, context.Canceled):
		// client went away
		log.Debug().Err(err).Msg("request cancelled")
	default:
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error", CodeInternal)
	}
}

// decodeJSON reads a JSON body of at most maxBytes, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error(), CodeInvalidRequest)
		return false
	}
	return true
}

// NotFound replies with the list of known endpoints
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":               "endpoint not found",
		"error_code":          CodeNotFound,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
		"request_id":          middleware.GetReqID(r.Context()),
		"available_endpoints": Endpoints,
	})
}

// MethodNotAllowed replies with a JSON 405
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", CodeNotAllowed)
}

// Endpoints lists the public HTTP surface
var Endpoints = []string{
	"GET /",
	"GET /health",
	"GET /ready",
	"GET /metrics",
	"POST /api/v1/analyze",
	"POST /api/v1/analyze/bulk",
	"POST /api/v1/url/check",
	"GET /api/v1/patterns",
	"GET /api/v1/stats",
	"POST /api/v1/feedback",
	"POST /api/v1/report",
	"GET /api/v1/stream",
	"GET /api/v1/stream/stats",
	"POST /api/v1/admin/patterns",
	"POST /api/v1/admin/domains",
	"GET /api/v1/admin/feedback",
}
