package service

import (
	"context"
	"log/slog"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// PostService handles posts. Deleting a post cascades to its comments.
type PostService struct {
	*records[model.Post]
	users repository.Gateway[model.User]
}

// NewPostService creates a PostService. users is consulted to verify authors.
func NewPostService(
	posts repository.Gateway[model.Post],
	users repository.Gateway[model.User],
	logger *slog.Logger,
) *PostService {
	return &PostService{
		records: &records[model.Post]{gateway: posts, resource: "post", logger: logger},
		users:   users,
	}
}

// Create publishes a post by authorID. Blank fields fail with
// apperror.ErrValidation. Returns apperror.ErrReferenceNotFound, and stores
// nothing, when the author does not exist.
func (s *PostService) Create(ctx context.Context, title, content string, authorID int64) (model.Post, error) {
	if err := requireText("title", title, "content", content); err != nil {
		return model.Post{}, err
	}
	if err := requireRecord(ctx, s.users, "author", authorID); err != nil {
		return model.Post{}, err
	}

	post, err := s.create(ctx, model.NewPost(title, content, authorID))
	if err != nil {
		return post, err
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.Int64("authorID", post.AuthorID),
	)
	return post, nil
}

// requireRecord returns apperror.ReferenceNotFound(role, id) when id does not
// resolve through gw. Lookup failures are returned unchanged.
func requireRecord[T model.Entity](ctx context.Context, gw repository.Gateway[T], role string, id int64) error {
	_, ok, err := gw.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ReferenceNotFound(role, id)
	}
	return nil
}
