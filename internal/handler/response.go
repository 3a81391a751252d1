package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//   {"error": "author with id 999 does not exist", "kind": "reference_not_found"}
//
// "error" is for people, "kind" is for programs. Opaque failures never
// expose their cause; they carry an "incident" id instead, and the same id
// is logged next to the real error so an operator can find it.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/blog-api/internal/apperror"
)

// Error kinds reported in ErrorResponse.Kind.
const (
	KindValidation        = "validation_error"
	KindReferenceNotFound = "reference_not_found"
	KindNotFound          = "not_found"
	KindConflict          = "conflict"
	KindMethodNotAllowed  = "method_not_allowed"
	KindInternal          = "internal_error"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	Incident string `json:"incident,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written; once Encode
// calls w.Write the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps an error from the service layer to an HTTP response.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation        → 400 validation_error
//	apperror.ErrReferenceNotFound → 400 reference_not_found
//	apperror.ErrNotFound          → 404 not_found
//	apperror.ErrConflict          → 409 conflict
//	anything else                 → 500 internal_error (logged, incident id)
//
// errors.Is walks the Unwrap chain, so wrapped AppErrors still match.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status, kind := classify(err)
		if status != http.StatusInternalServerError {
			writeJSON(w, status, ErrorResponse{Error: appErr.Message, Kind: kind})
			return
		}
	}

	// Unknown error: never expose the cause. SQL, file paths and driver
	// messages stay in the log.
	incident := xid.New().String()
	logger.Error("request failed",
		slog.String("incident", incident),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:    "an internal error occurred",
		Kind:     KindInternal,
		Incident: incident,
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, KindValidation
	case errors.Is(err, apperror.ErrReferenceNotFound):
		return http.StatusBadRequest, KindReferenceNotFound
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, KindConflict
	default:
		return http.StatusInternalServerError, KindInternal
	}
}
