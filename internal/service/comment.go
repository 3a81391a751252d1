package service

import (
	"context"
	"log/slog"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// CommentService handles comments.
type CommentService struct {
	*records[model.Comment]
	posts repository.Gateway[model.Post]
	users repository.Gateway[model.User]
}

// NewCommentService creates a CommentService.
func NewCommentService(
	comments repository.Gateway[model.Comment],
	posts repository.Gateway[model.Post],
	users repository.Gateway[model.User],
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		records: &records[model.Comment]{gateway: comments, resource: "comment", logger: logger},
		posts:   posts,
		users:   users,
	}
}

// Create adds a comment by authorID to postID.
// The post is checked before the author; the first missing one is reported.
func (s *CommentService) Create(ctx context.Context, content string, postID, authorID int64) (model.Comment, error) {
	if err := requireText("content", content); err != nil {
		return model.Comment{}, err
	}
	if err := requireRecord(ctx, s.posts, "post", postID); err != nil {
		return model.Comment{}, err
	}
	if err := requireRecord(ctx, s.users, "author", authorID); err != nil {
		return model.Comment{}, err
	}

	comment, err := s.create(ctx, model.NewComment(content, postID, authorID))
	if err != nil {
		return comment, err
	}

	s.logger.Info("comment created",
		slog.Int64("id", comment.ID),
		slog.Int64("postID", comment.PostID),
		slog.Int64("authorID", comment.AuthorID),
	)
	return comment, nil
}
