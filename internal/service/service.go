// Package service contains the use cases of the blog: the only layer that
// makes decisions.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → checks references, orchestrates
//	Repository (Data layer)  → reads/writes a backend
//
// Services take already-parsed, typed arguments and return records or
// apperror values; they never see HTTP. Storage errors are returned as they
// are, so the boundary decides how to present them.
//
// FIELD CHECKS:
// username, email, title and content must contain non-space text. A blank
// one is rejected with apperror.ValidationFailed before any storage call.
//
// REFERENTIAL INTEGRITY:
// Creating a post requires an existing author; creating a comment requires
// an existing post and then an existing author. Checks run in that order and
// stop at the first missing reference, which is named in the returned
// apperror.ReferenceNotFound.
//
// The check and the insert are two storage calls. The relational backends
// close the window between them with foreign keys (the insert fails as a
// conflict); the memory backend leaves it open.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// Services bundles every use case. Build it once with New and hand it to the
// HTTP layer.
type Services struct {
	Users    *UserService
	Posts    *PostService
	Comments *CommentService
}

// New wires the use cases to the gateways of one store.
func New(store repository.Store, logger *slog.Logger) *Services {
	return &Services{
		Users:    NewUserService(store.Users(), logger),
		Posts:    NewPostService(store.Posts(), store.Users(), logger),
		Comments: NewCommentService(store.Comments(), store.Posts(), store.Users(), logger),
	}
}

// records implements the read and delete use cases, which are identical for
// every record type. Each service embeds one.
type records[T model.Entity] struct {
	gateway  repository.Gateway[T]
	resource string
	logger   *slog.Logger
}

// GetByID returns the record and true, or the zero value and false when no
// record has that id.
func (r *records[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	return r.gateway.GetByID(ctx, id)
}

// GetAll returns every record in insertion order. The slice may be empty but
// is never nil.
func (r *records[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.gateway.GetAll(ctx)
}

// Delete removes the record and whatever the store cascades to.
// Deleting an id that does not exist succeeds.
func (r *records[T]) Delete(ctx context.Context, id int64) error {
	if err := r.gateway.Delete(ctx, id); err != nil {
		r.logger.Error("failed to delete "+r.resource,
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.Info(r.resource+" deleted", slog.Int64("id", id))
	return nil
}

// create stores rec and logs the outcome.
func (r *records[T]) create(ctx context.Context, rec T) (T, error) {
	created, err := r.gateway.Create(ctx, rec)
	if err != nil {
		r.logger.Error("failed to create "+r.resource, slog.String("error", err.Error()))
		return created, err
	}
	return created, nil
}

// requireText checks name/value pairs in order and reports the first value
// that is empty or only whitespace.
func requireText(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return apperror.ValidationFailed(pairs[i], pairs[i]+" must not be blank")
		}
	}
	return nil
}
