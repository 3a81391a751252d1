package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
)

// Records is the read and delete half of a service. Every service in
// internal/service satisfies it for its own record type.
type Records[T model.Entity] interface {
	GetByID(ctx context.Context, id int64) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}

// resource serves the three routes that look the same for every record
// type: list, fetch and delete. The typed handlers embed it and add create.
type resource[T model.Entity] struct {
	name    string
	records Records[T]
	logger  *slog.Logger
}

// HandleList returns every record as a JSON array, [] when there are none.
//
// HTTP: GET /{collection}
func (h *resource[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.records.GetAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleGet returns one record, or 404 when the id is unknown.
//
// HTTP: GET /{collection}/{id}
func (h *resource[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rec, ok, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if !ok {
		writeError(w, r, h.logger, apperror.NotFound(h.name, id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleDelete removes a record and answers 204, whether or not the record
// existed.
//
// HTTP: DELETE /{collection}/{id}
func (h *resource[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
