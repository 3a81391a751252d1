package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/blog-api/internal/apperror"
)

// maxBodyBytes caps request bodies. Every create payload is a handful of
// short strings.
const maxBodyBytes = 1 << 20

// decodeJSON reads exactly one JSON object from the request body into dst.
//
// STRICT DECODING:
// DisallowUnknownFields turns a typo like {"autor_id": 1} into a 400
// instead of silently creating a post with a missing author. A second JSON
// value after the first is rejected too.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.ValidationFailed("body", "request body is empty")
		}
		return apperror.ValidationFailed("body", fmt.Sprintf("invalid JSON body: %v", err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("body", "request body must contain a single JSON object")
	}
	return nil
}

// parseID reads the {id} URL parameter set by the chi router.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q: must be an integer", raw))
	}
	return id, nil
}

// required checks that every named field is present. present maps the JSON
// field name to whether it was supplied; the first missing one (in names
// order) is reported. Blank strings are rejected by the services.
func required(names []string, present map[string]bool) error {
	for _, name := range names {
		if !present[name] {
			return apperror.ValidationFailed(name, name+" is required")
		}
	}
	return nil
}
